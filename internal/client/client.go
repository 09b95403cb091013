// Package client provides a typed REST client for the ShopAI server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopai/shopai-go/internal/catalog"
	"github.com/shopai/shopai-go/internal/gateway"
	"github.com/shopai/shopai-go/internal/metrics"
	"github.com/shopai/shopai-go/internal/models"
	"github.com/shopai/shopai-go/internal/server"
	"github.com/shopai/shopai-go/internal/session"
)

// Client talks to a running ShopAI server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
// If baseURL is empty, uses SHOPAI_SERVER_URL env var or defaults to localhost:8486.
// Timeout can be configured via SHOPAI_CLIENT_TIMEOUT env var (default 5m; AI
// endpoints are slow).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("SHOPAI_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8486"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := 5 * time.Minute
	if t := os.Getenv("SHOPAI_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorResponse is the server's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// do sends a request with an optional JSON body and decodes the JSON response
// into result when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s - %s", resp.Status, errResp.Error)
		}
		return fmt.Errorf("server error: %s - %s", resp.Status, string(raw))
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// Health checks server liveness.
func (c *Client) Health(ctx context.Context) error {
	var result map[string]string
	return c.do(ctx, http.MethodGet, "/health", nil, &result)
}

// Search runs one product search against the server.
func (c *Client) Search(ctx context.Context, query string, prefs *models.Preferences) (*gateway.Result, error) {
	var result gateway.Result
	err := c.do(ctx, http.MethodPost, "/api/search", server.SearchRequest{Query: query, Preferences: prefs}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Compare runs a full comparison pass and returns the final session snapshot.
func (c *Client) Compare(ctx context.Context, query string) (*session.ComparisonSnapshot, error) {
	var result session.ComparisonSnapshot
	err := c.do(ctx, http.MethodPost, "/api/compare", server.CompareRequest{Query: query}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats returns in-memory runtime statistics (resets on server restart).
func (c *Client) Stats(ctx context.Context) (*metrics.Snapshot, error) {
	var result metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Categories returns the browsable product categories.
func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var result []catalog.Category
	if err := c.do(ctx, http.MethodGet, "/api/catalog/categories", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Trending returns the current trending search queries.
func (c *Client) Trending(ctx context.Context) ([]string, error) {
	var result []string
	if err := c.do(ctx, http.MethodGet, "/api/catalog/trending", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Deals returns today's featured deals.
func (c *Client) Deals(ctx context.Context) ([]models.Product, error) {
	var result []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/catalog/deals", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateConversation starts a server-side chat session. initialQuery may be
// empty for a fresh conversation.
func (c *Client) CreateConversation(ctx context.Context, initialQuery string, prefs *models.Preferences) (*server.ConversationResponse, error) {
	var result server.ConversationResponse
	req := server.CreateConversationRequest{InitialQuery: initialQuery, Preferences: prefs}
	if err := c.do(ctx, http.MethodPost, "/api/conversations", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetConversation fetches the current transcript of a chat session.
func (c *Client) GetConversation(ctx context.Context, id string) (*server.ConversationResponse, error) {
	var result server.ConversationResponse
	if err := c.do(ctx, http.MethodGet, "/api/conversations/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteConversation closes and forgets a chat session.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/conversations/"+id, nil, nil)
}

// PostMessage submits one chat turn and blocks until the assistant responds.
func (c *Client) PostMessage(ctx context.Context, id, text string) (*server.ConversationResponse, error) {
	var result server.ConversationResponse
	req := server.MessageRequest{Text: text}
	if err := c.do(ctx, http.MethodPost, "/api/conversations/"+id+"/messages", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WatchConversation subscribes to transcript snapshots over a websocket. The
// onSnapshot callback is invoked for every pushed snapshot; return an error
// from it to abort. Blocks until the context is cancelled, the callback
// aborts, or the connection drops.
func (c *Client) WatchConversation(ctx context.Context, id string, onSnapshot func(server.ConversationResponse) error) error {
	wsURL := c.baseURL + "/api/conversations/" + id + "/ws"
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("websocket connect: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var snap server.ConversationResponse
		if err := conn.ReadJSON(&snap); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read snapshot: %w", err)
		}
		if err := onSnapshot(snap); err != nil {
			return err
		}
	}
}
