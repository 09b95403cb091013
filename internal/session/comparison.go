package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopai/shopai-go/internal/gateway"
	"github.com/shopai/shopai-go/internal/models"
)

// State names the phases of a comparison run.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateComparing State = "comparing"
	StateError     State = "error"
)

// Fixed error texts for the comparison view. An empty result set and an
// unreachable service are distinct outcomes and keep distinct wording.
const (
	ErrNoProducts    = "I couldn't find products to compare for that request. Try being more specific!"
	ErrComparisonRun = "Failed to fetch comparison data. Please try again."
)

// Comparison is the side-by-side comparison state machine:
// idle → searching → comparing → idle, with error reachable from searching.
type Comparison struct {
	mu       sync.Mutex
	search   gateway.Searcher
	compare  gateway.Comparer
	logger   *slog.Logger
	state    State
	query    string
	products []models.Product
	verdict  string
	errMsg   string
	closed   bool
	subs     map[chan struct{}]struct{}
}

// ComparisonSnapshot is a consistent read of the session for rendering.
type ComparisonSnapshot struct {
	State    State            `json:"state"`
	Query    string           `json:"query"`
	Products []models.Product `json:"products"`
	Verdict  string           `json:"verdict"`
	Error    string           `json:"error,omitempty"`
	MaxPrice float64          `json:"maxPrice"`
}

// NewComparison creates an idle comparison session.
func NewComparison(search gateway.Searcher, compare gateway.Comparer, logger *slog.Logger) *Comparison {
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparison{
		search:  search,
		compare: compare,
		logger:  logger,
		state:   StateIdle,
		subs:    make(map[chan struct{}]struct{}),
	}
}

// Run executes one comparison pass for the query: search, then (only when
// products came back) a verdict call. A new run fully supersedes the previous
// result set and verdict. It reports false without side effects when the
// query trims to empty, a run is in flight, or the session is closed.
func (c *Comparison) Run(ctx context.Context, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	c.mu.Lock()
	if c.closed || c.state == StateSearching || c.state == StateComparing {
		c.mu.Unlock()
		return false
	}
	c.query = query
	c.verdict = ""
	c.errMsg = ""
	c.state = StateSearching
	c.mu.Unlock()
	c.notify()

	res, ok := c.safeSearch(ctx, query)
	if !ok {
		c.fail(ErrComparisonRun)
		return true
	}

	if len(res.Products) == 0 {
		// Nothing to compare; the verdict call is never issued.
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return true
		}
		c.products = nil
		c.state = StateError
		c.errMsg = ErrNoProducts
		c.mu.Unlock()
		c.notify()
		return true
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return true
	}
	c.products = res.Products
	c.state = StateComparing
	c.mu.Unlock()
	c.notify()

	verdict, ok := c.safeCompare(ctx, res.Products)
	if !ok {
		c.fail(ErrComparisonRun)
		return true
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return true
	}
	c.verdict = verdict
	c.state = StateIdle
	c.mu.Unlock()
	c.notify()
	return true
}

// safeSearch shields the state machine from a panicking Searcher
// implementation. The gateway contract forbids errors, not panics.
func (c *Comparison) safeSearch(ctx context.Context, query string) (res gateway.Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("search gateway panicked", "panic", r)
			ok = false
		}
	}()
	return c.search.Search(ctx, query, nil), true
}

func (c *Comparison) safeCompare(ctx context.Context, products []models.Product) (verdict string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("comparison gateway panicked", "panic", r)
			ok = false
		}
	}()
	return c.compare.Compare(ctx, products), true
}

func (c *Comparison) fail(msg string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.products = nil
	c.state = StateError
	c.errMsg = msg
	c.mu.Unlock()
	c.notify()
}

// Snapshot returns a consistent view of the session. MaxPrice defaults to 1
// for an empty set so percentage bars never divide by zero.
func (c *Comparison) Snapshot() ComparisonSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := make([]models.Product, len(c.products))
	copy(products, c.products)

	return ComparisonSnapshot{
		State:    c.state,
		Query:    c.query,
		Products: products,
		Verdict:  c.verdict,
		Error:    c.errMsg,
		MaxPrice: maxPrice(c.products),
	}
}

func maxPrice(products []models.Product) float64 {
	if len(products) == 0 {
		return 1
	}
	max := products[0].Price
	for _, p := range products[1:] {
		if p.Price > max {
			max = p.Price
		}
	}
	return max
}

// Subscribe registers a change-notification channel, as on Conversation.
func (c *Comparison) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()
	return ch
}

// Unsubscribe removes a previously subscribed channel.
func (c *Comparison) Unsubscribe(ch chan struct{}) {
	c.mu.Lock()
	delete(c.subs, ch)
	c.mu.Unlock()
}

// Close tears the session down; late gateway resolutions are discarded.
func (c *Comparison) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.notify()
}

func (c *Comparison) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
