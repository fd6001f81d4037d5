package state

import (
	"strings"
	"sync"
)

// Session tracks the active chat, derived from the current navigation path.
// Paths of the form /c/<id> select a chat; any other path means no chat is
// active.
type Session struct {
	mu          sync.Mutex
	chatID      string
	subscribers []func(chatID string)
}

func NewSession() *Session {
	return &Session{}
}

// ChatIDFromPath extracts the chat id from a navigation path, or "".
func ChatIDFromPath(path string) string {
	if !strings.HasPrefix(path, "/c/") {
		return ""
	}
	id := strings.TrimPrefix(path, "/c/")
	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	return id
}

// SetPath updates the session from a navigation path, notifying subscribers
// when the active chat changes.
func (s *Session) SetPath(path string) {
	s.setChatID(ChatIDFromPath(path))
}

func (s *Session) setChatID(chatID string) {
	s.mu.Lock()
	if s.chatID == chatID {
		s.mu.Unlock()
		return
	}
	s.chatID = chatID
	subscribers := make([]func(string), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(chatID)
	}
}

// ChatID returns the active chat id, or "" when no chat is active.
func (s *Session) ChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatID
}

// Subscribe registers a callback invoked whenever the active chat changes.
func (s *Session) Subscribe(fn func(chatID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
