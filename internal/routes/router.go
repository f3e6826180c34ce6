// Package routes wires the HTTP surface onto a chi router.
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pulseboard/pulseboard/internal/http/handlers"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Webhook    *handlers.WebhookHandler
	Repository *handlers.RepositoryHandler
	Analytics  *handlers.AnalyticsHandler
	Review     *handlers.ReviewHandler
	Stream     *handlers.StreamHandler
}

// NewRouter builds the service router with the standard middleware
// stack. The notification stream is mounted outside the timeout group
// because SSE connections stay open indefinitely.
func NewRouter(h Handlers) chi.Router {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger)
	router.Use(chimiddleware.Recoverer)

	router.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))

		r.Post("/webhooks/{provider}", h.Webhook.Receive)

		r.Get("/repositories", h.Repository.FetchAllRepositories)
		r.Get("/repositories/{id}", h.Repository.FetchRepository)
		r.Get("/repositories/{id}/commits", h.Repository.FetchRepositoryCommits)

		r.Get("/leaderboard", h.Analytics.Leaderboard)
		r.Get("/engineers/{id}", h.Analytics.EngineerDetails)
		r.Get("/analytics", h.Analytics.Summary)
		r.Get("/analytics/team", h.Analytics.TeamComparison)

		r.Post("/reviews", h.Review.CreateReview)
		r.Get("/pull-requests/{id}/reviews", h.Review.FetchPullRequestReviews)
	})

	router.Get("/notifications/stream", h.Stream.Stream)

	// Serve Swagger documentation
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	return router
}

// requestLogger logs one line per completed request with the chi
// request id attached.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Info().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("request completed")
		}()

		next.ServeHTTP(ww, r)
	})
}
