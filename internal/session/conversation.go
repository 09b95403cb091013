// Package session holds the per-view, in-memory state machines that consume
// the gateways. Sessions are not persisted; they live as long as their owner.
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopai/shopai-go/internal/gateway"
	"github.com/shopai/shopai-go/internal/models"
)

// Greeting seeds every new conversation.
const Greeting = "Hi! I'm your ShopAI assistant. What are you looking to buy today? " +
	"I can help you find the best prices across Amazon, Flipkart, Meesho, and more!"

// followUpSuggestions is the fixed suggestion set attached to every
// assistant turn.
var followUpSuggestions = []string{"Show cheaper options", "Compare top two", "Check ratings"}

// FollowUpSuggestions returns a copy of the fixed follow-up suggestion set.
func FollowUpSuggestions() []string {
	out := make([]string, len(followUpSuggestions))
	copy(out, followUpSuggestions)
	return out
}

// Conversation is the chat state machine: an append-only transcript that
// loops idle → awaiting-response → idle. One turn in flight at a time.
type Conversation struct {
	mu       sync.Mutex
	search   gateway.Searcher
	prefs    *models.Preferences
	logger   *slog.Logger
	messages []models.Message
	awaiting bool
	closed   bool
	subs     map[chan struct{}]struct{}
}

// ConversationOption configures a new conversation.
type ConversationOption func(*Conversation)

// WithPreferences attaches search preference hints to every turn.
func WithPreferences(prefs *models.Preferences) ConversationOption {
	return func(c *Conversation) { c.prefs = prefs }
}

// WithConversationLogger overrides the default logger.
func WithConversationLogger(logger *slog.Logger) ConversationOption {
	return func(c *Conversation) { c.logger = logger }
}

// NewConversation creates a conversation seeded with the assistant greeting.
// A non-blank initialQuery is submitted exactly once, automatically, on a
// background goroutine.
func NewConversation(search gateway.Searcher, initialQuery string, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		search: search,
		logger: slog.Default(),
		subs:   make(map[chan struct{}]struct{}),
		messages: []models.Message{{
			Role:      models.RoleAssistant,
			Content:   Greeting,
			Timestamp: time.Now(),
		}},
	}
	for _, opt := range opts {
		opt(c)
	}

	if strings.TrimSpace(initialQuery) != "" {
		go c.Submit(context.Background(), initialQuery)
	}
	return c
}

// Submit runs one full turn: it appends the user message immediately, blocks
// on the search gateway, then appends the assistant message with the answer,
// products and the fixed follow-up suggestions.
//
// It reports false without side effects when text trims to empty, a turn is
// already in flight, or the session is closed. Clicking a suggestion is
// equivalent to submitting its text.
func (c *Conversation) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	if c.awaiting || c.closed {
		c.mu.Unlock()
		return false
	}
	c.awaiting = true
	// The transcript always reflects what was asked, even if the call fails.
	c.messages = append(c.messages, models.Message{
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	c.mu.Unlock()
	c.notify()

	// The gateway never fails: a service error comes back as the fallback.
	res := c.search.Search(ctx, text, c.prefs)

	c.mu.Lock()
	if c.closed {
		// Late resolution after teardown is discarded.
		c.mu.Unlock()
		return true
	}
	c.messages = append(c.messages, models.Message{
		Role:        models.RoleAssistant,
		Content:     res.Answer,
		Products:    res.Products,
		Suggestions: FollowUpSuggestions(),
		Timestamp:   time.Now(),
	})
	c.awaiting = false
	c.mu.Unlock()
	c.notify()

	c.logger.Debug("conversation turn completed", "products", len(res.Products))
	return true
}

// Messages returns a snapshot copy of the transcript, ordered by submission.
func (c *Conversation) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Awaiting reports whether a turn is currently in flight.
func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Subscribe registers a change-notification channel. The channel receives at
// most one pending signal; slow consumers coalesce updates.
func (c *Conversation) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()
	return ch
}

// Unsubscribe removes a previously subscribed channel.
func (c *Conversation) Unsubscribe(ch chan struct{}) {
	c.mu.Lock()
	delete(c.subs, ch)
	c.mu.Unlock()
}

// Close tears the session down. An in-flight turn resolving afterwards is
// discarded without touching state.
func (c *Conversation) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.notify()
}

func (c *Conversation) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
