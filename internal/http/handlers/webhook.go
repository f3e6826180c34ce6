package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pulseboard/pulseboard/internal/http/dtos"
	"github.com/pulseboard/pulseboard/internal/usecases"
	"github.com/pulseboard/pulseboard/internal/webhook"
	"github.com/pulseboard/pulseboard/pkg/response"
	"github.com/rs/zerolog/log"
)

// maxWebhookBody caps the payload we are willing to read; GitHub caps
// deliveries at 25 MB.
const maxWebhookBody = 25 << 20

type WebhookHandler struct {
	webhookUsecase usecases.WebhookUsecase
	githubSecret   string
}

func NewWebhookHandler(webhookUsecase usecases.WebhookUsecase, githubSecret string) *WebhookHandler {
	return &WebhookHandler{
		webhookUsecase: webhookUsecase,
		githubSecret:   githubSecret,
	}
}

// Receive godoc
//
//	@Summary		Receive a webhook delivery
//	@Description	Ingests a push or pull request event from a source-control provider
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			provider	path	string	true	"Provider"	Enums(github, azure-devops)
//	@Success		200	{object}	dtos.WebhookResponse
//	@Failure		400	{object}	dtos.WebhookResponse
//	@Router			/webhooks/{provider} [post]
func (wh WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.SuccessResponse(w, http.StatusBadRequest, dtos.WebhookResponse{Message: dtos.WebhookFailed})
		return
	}

	// GitHub carries the event type in a header and signs the raw body;
	// Azure DevOps embeds the event type in the envelope.
	eventType := ""
	if provider == webhook.ProviderGitHub {
		eventType = r.Header.Get("X-GitHub-Event")
		if !wh.verifyGitHubSignature(payload, r.Header.Get("X-Hub-Signature-256")) {
			log.Warn().Str("event_type", eventType).Msg("rejected github delivery: signature mismatch")
			wh.webhookUsecase.RecordRejected(r.Context(), provider, eventType, payload, "signature mismatch")
			response.SuccessResponse(w, http.StatusBadRequest, dtos.WebhookResponse{Message: dtos.WebhookFailed})
			return
		}
	}

	if wh.webhookUsecase.Ingest(r.Context(), provider, eventType, payload) {
		response.SuccessResponse(w, http.StatusOK, dtos.WebhookResponse{Message: dtos.WebhookProcessed})
		return
	}
	response.SuccessResponse(w, http.StatusBadRequest, dtos.WebhookResponse{Message: dtos.WebhookFailed})
}

// verifyGitHubSignature checks the X-Hub-Signature-256 header against
// an HMAC-SHA256 of the raw body. Verification is skipped when no
// secret is configured. The comparison is constant-time.
func (wh WebhookHandler) verifyGitHubSignature(payload []byte, header string) bool {
	if wh.githubSecret == "" {
		return true
	}

	const prefix = "sha256="
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return false
	}
	want, err := hex.DecodeString(header[len(prefix):])
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(wh.githubSecret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), want)
}
