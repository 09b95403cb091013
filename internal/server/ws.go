package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// handleConversationWS streams transcript snapshots to the client: one on
// connect, then one for every session change notification.
func (s *Server) handleConversationWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	conv, ok := s.registry.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "conversation", id, "error", err)
		return
	}
	defer conn.Close()

	ch := conv.Subscribe()
	defer conv.Unsubscribe(ch)

	// Read pump: the client sends nothing meaningful, but reading is the only
	// way to learn the peer hung up.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		return conn.WriteJSON(ConversationResponse{
			ID:       id,
			Messages: conv.Messages(),
			Awaiting: conv.Awaiting(),
		})
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ch:
			if err := send(); err != nil {
				return
			}
		}
	}
}
