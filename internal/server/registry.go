package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopai/shopai-go/internal/session"
)

// conversationRegistry tracks live chat sessions by id. Sessions are
// in-memory only; a restart forgets them all.
type conversationRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session.Conversation
}

func newConversationRegistry() *conversationRegistry {
	return &conversationRegistry{sessions: make(map[string]*session.Conversation)}
}

// add registers a session and returns its generated id.
func (r *conversationRegistry) add(c *session.Conversation) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()
	return id
}

// get looks a session up by id.
func (r *conversationRegistry) get(id string) (*session.Conversation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[id]
	return c, ok
}

// remove closes and forgets a session. Reports whether it existed.
func (r *conversationRegistry) remove(id string) bool {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		c.Close()
	}
	return ok
}

// closeAll closes every live session.
func (r *conversationRegistry) closeAll() {
	r.mu.Lock()
	sessions := make([]*session.Conversation, 0, len(r.sessions))
	for _, c := range r.sessions {
		sessions = append(sessions, c)
	}
	r.sessions = make(map[string]*session.Conversation)
	r.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}
