package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pulseboard/pulseboard/internal/notifier"
	"github.com/rs/zerolog/log"
)

type StreamHandler struct {
	hub *notifier.Hub
}

func NewStreamHandler(hub *notifier.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream godoc
//
//	@Summary	Server-sent event stream of notifications
//	@Description	Streams notifications as SSE. With no filters the client receives everything; repository, event and user filters narrow the audience.
//	@Tags		notifications
//	@Produce	text/event-stream
//	@Param		repository	query	int		false	"Repository id"
//	@Param		event		query	string	false	"Webhook event type"
//	@Param		user		query	int		false	"Engineer id"
//	@Router		/notifications/stream [get]
func (sh StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := sh.hub.Subscribe(streamGroups(r)...)
	defer sh.hub.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case n, open := <-sub.C:
			if !open {
				return
			}
			body, err := json.Marshal(n)
			if err != nil {
				log.Error().Err(err).Str("notification", n.ID).Msg("failed to encode notification")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Type, body)
			flusher.Flush()
		}
	}
}

// streamGroups maps the filter query parameters onto hub groups. No
// filters means the firehose.
func streamGroups(r *http.Request) []string {
	q := r.URL.Query()

	var groups []string
	if id, err := strconv.ParseUint(q.Get("repository"), 10, 64); err == nil {
		groups = append(groups, notifier.GroupRepository(uint(id)))
	}
	if event := q.Get("event"); event != "" {
		groups = append(groups, notifier.GroupEventType(event))
	}
	if id, err := strconv.ParseUint(q.Get("user"), 10, 64); err == nil {
		groups = append(groups, notifier.GroupUser(uint(id)))
	}
	return groups
}
