package domain

import "time"

// WebhookEvent is the append-only audit row for an inbound delivery.
// It starts unprocessed and transitions exactly once to processed, with
// or without an error. It is never deleted.
type WebhookEvent struct {
	ID          uint       `json:"id"`
	PublicID    string     `json:"public_id"`
	Provider    string     `json:"provider"`
	EventType   string     `json:"event_type"`
	Payload     []byte     `json:"-"`
	Processed   bool       `json:"processed"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
