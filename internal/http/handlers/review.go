package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pulseboard/pulseboard/internal/http/dtos"
	"github.com/pulseboard/pulseboard/internal/usecases"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/pulseboard/pulseboard/pkg/response"
)

type ReviewHandler struct {
	reviewUsecase usecases.ReviewUsecase
}

func NewReviewHandler(reviewUsecase usecases.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
	}
}

// CreateReview godoc
//
//	@Summary	Record a review for a pull request or commit
//	@Tags		reviews
//	@Accept		json
//	@Produce	json
//	@Param		review	body		dtos.ReviewInput	true	"Review"
//	@Success	201	{object}	domain.Review
//	@Router		/reviews [post]
func (rh ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input dtos.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := rh.reviewUsecase.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, errcodes.ErrMissingReviewTarget) || errors.Is(err, errcodes.ErrInvalidScore) {
			response.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(w, http.StatusCreated, review)
}

// FetchPullRequestReviews godoc
//
//	@Summary	List reviews for a pull request
//	@Tags		reviews
//	@Produce	json
//	@Param		id	path	int	true	"Pull request id"
//	@Success	200	{array}	domain.Review
//	@Router		/pull-requests/{id}/reviews [get]
func (rh ReviewHandler) FetchPullRequestReviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid pull request id")
		return
	}

	reviews, err := rh.reviewUsecase.ByPullRequest(r.Context(), uint(id))
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(w, http.StatusOK, reviews)
}
