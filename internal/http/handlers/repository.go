package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pulseboard/pulseboard/internal/repository"
	"github.com/pulseboard/pulseboard/internal/usecases"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/pulseboard/pulseboard/pkg/response"
)

type RepositoryHandler struct {
	repositoryUsecase usecases.RepositoryUsecase
}

func NewRepositoryHandler(repositoryUsecase usecases.RepositoryUsecase) *RepositoryHandler {
	return &RepositoryHandler{
		repositoryUsecase: repositoryUsecase,
	}
}

// FetchAllRepositories godoc
//
//	@Summary	List known repositories
//	@Tags		repositories
//	@Produce	json
//	@Success	200	{array}	domain.Repository
//	@Router		/repositories [get]
func (rh RepositoryHandler) FetchAllRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := rh.repositoryUsecase.GetAll(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(w, http.StatusOK, repos)
}

// FetchRepository godoc
//
//	@Summary	Get one repository
//	@Tags		repositories
//	@Produce	json
//	@Param		id	path		string	true	"Repository public id"
//	@Success	200	{object}	domain.Repository
//	@Router		/repositories/{id} [get]
func (rh RepositoryHandler) FetchRepository(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "id")

	repo, err := rh.repositoryUsecase.GetByPublicID(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, errcodes.ErrNoRecordFound) {
			response.ErrorResponse(w, http.StatusNotFound, "Repository not found")
			return
		}
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(w, http.StatusOK, repo)
}

// FetchRepositoryCommits godoc
//
//	@Summary	List commits for a repository
//	@Tags		repositories
//	@Produce	json
//	@Param		id		path	string	true	"Repository public id"
//	@Param		page	query	int		false	"Page number"
//	@Param		limit	query	int		false	"Page size"
//	@Success	200	{object}	dtos.MultiCommitsResponse
//	@Router		/repositories/{id}/commits [get]
func (rh RepositoryHandler) FetchRepositoryCommits(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "id")
	query := pagingQueryFromRequest(r)

	commits, err := rh.repositoryUsecase.CommitsByRepository(r.Context(), publicID, query)
	if err != nil {
		if errors.Is(err, errcodes.ErrNoRecordFound) {
			response.ErrorResponse(w, http.StatusNotFound, "Repository not found")
			return
		}
		response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(w, http.StatusOK, commits)
}

// pagingQueryFromRequest reads page/limit/sort/direction query
// parameters; bad values fall back to the store defaults.
func pagingQueryFromRequest(r *http.Request) repository.PagingQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return repository.PagingQuery{
		Page:      page,
		Limit:     limit,
		Sort:      q.Get("sort"),
		Direction: q.Get("direction"),
	}
}
