package state

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/malonaz/chatd/chats"
)

// ChatProvider caches the chat list and applies optimistic mutations to it.
type ChatProvider struct {
	mu       sync.Mutex
	repo     *chats.Repository
	notifier Notifier
	cache    []*chats.Chat
}

// NewChatProvider instantiates a provider. Call Refresh to populate it.
func NewChatProvider(repo *chats.Repository, notifier Notifier) *ChatProvider {
	return &ChatProvider{repo: repo, notifier: notifier}
}

// Refresh re-synchronizes the cache from the repository.
func (p *ChatProvider) Refresh() error {
	fresh, err := p.repo.List()
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = fresh
	return nil
}

// Chats returns a snapshot of the cached chat list.
func (p *ChatProvider) Chats() []*chats.Chat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// GetByID returns the cached chat with the given id, or nil.
func (p *ChatProvider) GetByID(id string) *chats.Chat {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, chat := range p.cache {
		if chat.ID == id {
			return chat
		}
	}
	return nil
}

// PinnedChats returns pinned chats that belong to no project, most recently
// pinned first.
func (p *ChatProvider) PinnedChats() []*chats.Chat {
	p.mu.Lock()
	defer p.mu.Unlock()
	var pinned []*chats.Chat
	for _, chat := range p.cache {
		if chat.Pinned && chat.ProjectID == "" {
			pinned = append(pinned, chat)
		}
	}
	sort.SliceStable(pinned, func(i, j int) bool {
		var it, jt time.Time
		if pinned[i].PinnedAt != nil {
			it = *pinned[i].PinnedAt
		}
		if pinned[j].PinnedAt != nil {
			jt = *pinned[j].PinnedAt
		}
		return it.After(jt)
	})
	return pinned
}

// Create adds a chat. The cache gains a placeholder immediately; once the
// repository confirms, the placeholder is replaced by the authoritative
// record with its server-echoed id and timestamps.
func (p *ChatProvider) Create(ctx context.Context, req *chats.CreateChatRequest) (*chats.Chat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.snapshot()

	now := time.Now().UTC()
	placeholder := &chats.Chat{
		ID:        fmt.Sprintf("optimistic-%d", now.UnixNano()),
		Title:     req.Title,
		Model:     req.Model,
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		Public:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if placeholder.Title == "" {
		placeholder.Title = "New Chat"
	}

	var created *chats.Chat
	err := runOptimistic(p.notifier, "Failed to create chat",
		func() {
			p.cache = append([]*chats.Chat{placeholder}, p.cache...)
		},
		func() error {
			var err error
			created, err = p.repo.Create(ctx, req)
			return err
		},
		func() {
			p.cache = prev
		},
	)
	if err != nil {
		return nil, err
	}

	// Reconcile: the authoritative record replaces the placeholder.
	for i, chat := range p.cache {
		if chat.ID == placeholder.ID {
			p.cache[i] = created
			break
		}
	}
	return created, nil
}

// Rename updates a chat's title, re-sorting the list by recency.
func (p *ChatProvider) Rename(id, title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.snapshot()

	var renamed *chats.Chat
	err := runOptimistic(p.notifier, "Failed to update title",
		func() {
			p.mutate(id, func(chat *chats.Chat) {
				chat.Title = title
				chat.UpdatedAt = time.Now().UTC()
			})
			chats.SortByRecency(p.cache)
		},
		func() error {
			var err error
			renamed, err = p.repo.Rename(id, title)
			return err
		},
		func() {
			p.cache = prev
		},
	)
	if err != nil {
		return err
	}
	p.reconcile(renamed)
	return nil
}

// Delete removes a chat from the cache and the store.
func (p *ChatProvider) Delete(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.snapshot()

	return runOptimistic(p.notifier, "Failed to delete chat",
		func() {
			filtered := p.cache[:0:0]
			for _, chat := range p.cache {
				if chat.ID != id {
					filtered = append(filtered, chat)
				}
			}
			p.cache = filtered
		},
		func() error {
			return p.repo.Delete(id)
		},
		func() {
			p.cache = prev
		},
	)
}

// SetModel switches a chat's model without reordering the list.
func (p *ChatProvider) SetModel(ctx context.Context, id, model string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.snapshot()

	var updated *chats.Chat
	err := runOptimistic(p.notifier, "Failed to update model",
		func() {
			p.mutate(id, func(chat *chats.Chat) {
				chat.Model = model
			})
		},
		func() error {
			var err error
			updated, err = p.repo.SetModel(ctx, id, model)
			return err
		},
		func() {
			p.cache = prev
		},
	)
	if err != nil {
		return err
	}
	p.reconcile(updated)
	return nil
}

// SetPinned toggles a chat's pin, keeping list order by recency.
func (p *ChatProvider) SetPinned(ctx context.Context, id string, pinned bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.snapshot()

	var updated *chats.Chat
	err := runOptimistic(p.notifier, "Failed to update pin",
		func() {
			p.mutate(id, func(chat *chats.Chat) {
				chat.Pinned = pinned
				if pinned {
					now := time.Now().UTC()
					chat.PinnedAt = &now
				} else {
					chat.PinnedAt = nil
				}
			})
			chats.SortByRecency(p.cache)
		},
		func() error {
			var err error
			updated, err = p.repo.SetPinned(ctx, id, pinned)
			return err
		},
		func() {
			p.cache = prev
		},
	)
	if err != nil {
		return err
	}
	p.reconcile(updated)
	return nil
}

// Bump refreshes a chat's update timestamp in the cache and re-sorts, used
// after a conversation turn so the active chat rises to the top. Cache-only.
func (p *ChatProvider) Bump(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mutate(id, func(chat *chats.Chat) {
		chat.UpdatedAt = time.Now().UTC()
	})
	chats.SortByRecency(p.cache)
}

// Reset drops the cache.
func (p *ChatProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = nil
}

// snapshot copies the cache slice and its records, so a rollback restores
// field values untouched by the failed mutation.
func (p *ChatProvider) snapshot() []*chats.Chat {
	out := make([]*chats.Chat, len(p.cache))
	for i, chat := range p.cache {
		copied := *chat
		out[i] = &copied
	}
	return out
}

func (p *ChatProvider) mutate(id string, fn func(*chats.Chat)) {
	for _, chat := range p.cache {
		if chat.ID == id {
			fn(chat)
			return
		}
	}
}

func (p *ChatProvider) reconcile(authoritative *chats.Chat) {
	if authoritative == nil {
		return
	}
	for i, chat := range p.cache {
		if chat.ID == authoritative.ID {
			p.cache[i] = authoritative
			return
		}
	}
}
