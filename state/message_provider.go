package state

import (
	"sync"

	"github.com/malonaz/chatd/messages"
)

// MessageProvider caches the transcript of the session's active chat.
type MessageProvider struct {
	mu       sync.Mutex
	repo     *messages.Repository
	notifier Notifier
	chatID   string
	cache    []*messages.Message
}

// NewMessageProvider instantiates a provider and subscribes it to session
// chat changes.
func NewMessageProvider(repo *messages.Repository, notifier Notifier, session *Session) *MessageProvider {
	p := &MessageProvider{repo: repo, notifier: notifier}
	if session != nil {
		session.Subscribe(p.setChat)
	}
	return p
}

// setChat re-synchronizes the cache when the active chat changes. A nil chat
// id clears the transcript.
func (p *MessageProvider) setChat(chatID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chatID = chatID
	if chatID == "" {
		p.cache = nil
		return
	}
	fresh, err := p.repo.List(chatID)
	if err != nil {
		p.cache = nil
		p.notifier.Error("Failed to load messages")
		return
	}
	p.cache = fresh
}

// Messages returns a snapshot of the cached transcript.
func (p *MessageProvider) Messages() []*messages.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*messages.Message, len(p.cache))
	copy(out, p.cache)
	return out
}

// Refresh re-reads the transcript from the repository.
func (p *MessageProvider) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chatID == "" {
		return
	}
	fresh, err := p.repo.List(p.chatID)
	if err != nil {
		p.notifier.Error("Failed to refresh messages")
		return
	}
	p.cache = fresh
}

// Append adds a message to the transcript. An explicit chat id targets a
// chat other than the session's, e.g. the first turn of a freshly created
// chat before navigation completes.
func (p *MessageProvider) Append(msg *messages.Message, explicitChatID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	chatID := explicitChatID
	if chatID == "" {
		chatID = p.chatID
	}
	if chatID == "" {
		return nil
	}

	prev := p.cache
	return runOptimistic(p.notifier, "Failed to save message",
		func() {
			if chatID == p.chatID {
				p.cache = append(p.cache[:len(p.cache):len(p.cache)], msg)
			}
		},
		func() error {
			return p.repo.Append(chatID, msg)
		},
		func() {
			if chatID == p.chatID {
				p.cache = prev
			}
		},
	)
}

// SaveAll replaces the active chat's transcript wholesale.
func (p *MessageProvider) SaveAll(msgs []*messages.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chatID == "" {
		return nil
	}

	prev := p.cache
	return runOptimistic(p.notifier, "Failed to save messages",
		func() {
			p.cache = msgs
		},
		func() error {
			return p.repo.ReplaceAll(p.chatID, msgs)
		},
		func() {
			p.cache = prev
		},
	)
}

// Clear empties the active chat's transcript.
func (p *MessageProvider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.chatID == "" {
		return nil
	}

	prev := p.cache
	return runOptimistic(p.notifier, "Failed to clear messages",
		func() {
			p.cache = nil
		},
		func() error {
			return p.repo.Clear(p.chatID)
		},
		func() {
			p.cache = prev
		},
	)
}

// Reset drops the cache without touching the store.
func (p *MessageProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = nil
}
