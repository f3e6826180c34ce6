package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pulseboard/pulseboard/internal/usecases"
	"github.com/pulseboard/pulseboard/pkg/errcodes"
	"github.com/pulseboard/pulseboard/pkg/response"
)

// defaultLeaderboardLimit bounds an unqualified leaderboard request.
const defaultLeaderboardLimit = 10

type AnalyticsHandler struct {
	analyticsUsecase usecases.AnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecases.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUsecase: analyticsUsecase,
	}
}

// Leaderboard godoc
//
//	@Summary	Ranked engineers for a period and metric
//	@Tags		analytics
//	@Produce	json
//	@Param		period	query	string	false	"Period (7d, 30d, 90d, 1y or WEEKLY, MONTHLY, QUARTERLY, YEARLY)"
//	@Param		metric	query	string	false	"Metric (commits, pull_requests, additions, deletions, review_score)"
//	@Param		limit	query	int		false	"Maximum entries"
//	@Success	200	{object}	dtos.LeaderboardResponse
//	@Router		/leaderboard [get]
func (ah AnalyticsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	res, err := ah.analyticsUsecase.Leaderboard(r.Context(), q.Get("period"), q.Get("metric"), limit)
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, res)
}

// EngineerDetails godoc
//
//	@Summary	One engineer with their period stats
//	@Tags		analytics
//	@Produce	json
//	@Param		id		path	int		true	"Engineer id"
//	@Param		period	query	string	false	"Period"
//	@Success	200	{object}	dtos.EngineerDetailsResponse
//	@Router		/engineers/{id} [get]
func (ah AnalyticsHandler) EngineerDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid engineer id")
		return
	}

	res, err := ah.analyticsUsecase.EngineerDetails(r.Context(), uint(id), r.URL.Query().Get("period"))
	if err != nil {
		if errors.Is(err, errcodes.ErrNoRecordFound) {
			response.ErrorResponse(w, http.StatusNotFound, "Engineer not found")
			return
		}
		writeAnalyticsError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, res)
}

// Summary godoc
//
//	@Summary	System-wide aggregates for a period
//	@Tags		analytics
//	@Produce	json
//	@Param		period	query	string	false	"Period"
//	@Success	200	{object}	domain.AnalyticsSummary
//	@Router		/analytics [get]
func (ah AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	res, err := ah.analyticsUsecase.Summary(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, res)
}

// TeamComparison godoc
//
//	@Summary	Per-engineer comparison for a period
//	@Tags		analytics
//	@Produce	json
//	@Param		period	query	string	false	"Period"
//	@Success	200	{object}	dtos.TeamComparisonResponse
//	@Router		/analytics/team [get]
func (ah AnalyticsHandler) TeamComparison(w http.ResponseWriter, r *http.Request) {
	res, err := ah.analyticsUsecase.TeamComparison(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, res)
}

func writeAnalyticsError(w http.ResponseWriter, err error) {
	if errors.Is(err, errcodes.ErrInvalidPeriod) || errors.Is(err, errcodes.ErrInvalidMetric) {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	response.ErrorResponse(w, http.StatusInternalServerError, err.Error())
}
