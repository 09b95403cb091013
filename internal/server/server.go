// Package server exposes the gateways, sessions, and catalog over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shopai/shopai-go/internal/gateway"
	"github.com/shopai/shopai-go/internal/metrics"
)

// Server holds the HTTP surface and its dependencies.
type Server struct {
	search   gateway.Searcher
	compare  gateway.Comparer
	logger   *slog.Logger
	metrics  *metrics.Collector
	registry *conversationRegistry
	validate *validator.Validate
	upgrader websocket.Upgrader
	router   *mux.Router
}

// New creates a server over the given gateways. logger and mc may be nil.
func New(search gateway.Searcher, compare gateway.Comparer, logger *slog.Logger, mc *metrics.Collector) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		search:   search,
		compare:  compare,
		logger:   logger,
		metrics:  mc,
		registry: newConversationRegistry(),
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same-origin is not enforced: the server fronts local UIs only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

// routes wires the HTTP routes.
func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(s.logger, s.metrics))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/catalog/categories", s.handleCategories).Methods(http.MethodGet)
	api.HandleFunc("/catalog/trending", s.handleTrending).Methods(http.MethodGet)
	api.HandleFunc("/catalog/deals", s.handleDeals).Methods(http.MethodGet)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	api.HandleFunc("/compare", s.handleCompare).Methods(http.MethodPost)
	api.HandleFunc("/conversations", s.handleCreateConversation).Methods(http.MethodPost)
	api.HandleFunc("/conversations/{id}", s.handleGetConversation).Methods(http.MethodGet)
	api.HandleFunc("/conversations/{id}", s.handleDeleteConversation).Methods(http.MethodDelete)
	api.HandleFunc("/conversations/{id}/messages", s.handlePostMessage).Methods(http.MethodPost)
	api.HandleFunc("/conversations/{id}/ws", s.handleConversationWS).Methods(http.MethodGet)

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close tears down all live conversation sessions.
func (s *Server) Close() {
	s.registry.closeAll()
}
