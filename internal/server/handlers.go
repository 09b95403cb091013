package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopai/shopai-go/internal/catalog"
	"github.com/shopai/shopai-go/internal/models"
	"github.com/shopai/shopai-go/internal/session"
)

// SearchRequest is the payload for POST /api/search.
type SearchRequest struct {
	Query       string              `json:"query" validate:"required"`
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

// CompareRequest is the payload for POST /api/compare.
type CompareRequest struct {
	Query string `json:"query" validate:"required"`
}

// CreateConversationRequest is the payload for POST /api/conversations.
type CreateConversationRequest struct {
	InitialQuery string              `json:"initialQuery,omitempty"`
	Preferences  *models.Preferences `json:"preferences,omitempty"`
}

// MessageRequest is the payload for POST /api/conversations/{id}/messages.
type MessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// ConversationResponse is the transcript view returned by the conversation
// endpoints and pushed over the websocket.
type ConversationResponse struct {
	ID       string           `json:"id"`
	Messages []models.Message `json:"messages"`
	Awaiting bool             `json:"awaiting"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.metrics == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Categories())
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Trending())
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Deals())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	res := s.search.Search(r.Context(), req.Query, req.Preferences)
	writeJSON(w, http.StatusOK, res)
}

// handleCompare runs a full comparison pass synchronously and returns the
// final session snapshot.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	comp := session.NewComparison(s.search, s.compare, s.logger)
	defer comp.Close()
	if !comp.Run(r.Context(), req.Query) {
		writeError(w, http.StatusBadRequest, "query must not be blank")
		return
	}
	writeJSON(w, http.StatusOK, comp.Snapshot())
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	// An empty body means a fresh conversation with no initial query.
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var opts []session.ConversationOption
	if req.Preferences != nil {
		opts = append(opts, session.WithPreferences(req.Preferences))
	}
	opts = append(opts, session.WithConversationLogger(s.logger))

	conv := session.NewConversation(s.search, req.InitialQuery, opts...)
	id := s.registry.add(conv)

	writeJSON(w, http.StatusCreated, ConversationResponse{
		ID:       id,
		Messages: conv.Messages(),
		Awaiting: conv.Awaiting(),
	})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	conv, ok := s.registry.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, ConversationResponse{
		ID:       id,
		Messages: conv.Messages(),
		Awaiting: conv.Awaiting(),
	})
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.registry.remove(id) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePostMessage submits one turn and blocks until it resolves, so the
// response already carries the assistant message.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	conv, ok := s.registry.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	var req MessageRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	// The required validator accepts whitespace; Submit would reject it with
	// the same false a busy session returns, so distinguish blanks here.
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be blank")
		return
	}

	if !conv.Submit(r.Context(), req.Text) {
		writeError(w, http.StatusConflict, "a response is already pending for this conversation")
		return
	}

	writeJSON(w, http.StatusOK, ConversationResponse{
		ID:       id,
		Messages: conv.Messages(),
		Awaiting: conv.Awaiting(),
	})
}

// decodeAndValidate decodes the JSON body into dst and checks its validate
// tags, writing the HTTP error itself when either step fails.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
