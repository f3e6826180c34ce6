package dtos

// WebhookResponse is the body returned by the webhook endpoint.
type WebhookResponse struct {
	Message string `json:"message"`
}

// Webhook endpoint response messages.
const (
	WebhookProcessed = "Webhook processed successfully"
	WebhookFailed    = "Failed to process webhook"
)
