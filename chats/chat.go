package chats

import (
	"sort"
	"time"
)

// Chat represents a single conversation thread.
type Chat struct {
	// ID of this chat, unique across the store.
	ID string `json:"id"`
	// Title shown in the chat list.
	Title string `json:"title"`
	// Model identifier used for completions.
	Model string `json:"model"`
	// ID of the owning local user.
	UserID string `json:"user_id"`
	// Optional project this chat belongs to.
	ProjectID string `json:"project_id,omitempty"`
	Public    bool   `json:"public"`
	// Pinned and PinnedAt: PinnedAt is non-nil iff Pinned is true.
	Pinned   bool       `json:"pinned"`
	PinnedAt *time.Time `json:"pinned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// sortTime is the timestamp used to order the chat list. Records with
// missing timestamps sort as epoch zero.
func (c *Chat) sortTime() time.Time {
	if !c.UpdatedAt.IsZero() {
		return c.UpdatedAt
	}
	return c.CreatedAt
}

// SortByRecency orders chats most recently updated first, falling back to
// creation time.
func SortByRecency(chatList []*Chat) {
	sort.SliceStable(chatList, func(i, j int) bool {
		return chatList[i].sortTime().After(chatList[j].sortTime())
	})
}
