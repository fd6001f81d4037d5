package chats

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// SetPinned pins or unpins a chat. PinnedAt is set to now when pinning and
// cleared when unpinning, keeping the pinned/pinned_at invariant.
func (r *Repository) SetPinned(ctx context.Context, id string, pinned bool) (*Chat, error) {
	if r.client != nil {
		if err := r.client.ToggleChatPin(ctx, id, pinned); err != nil {
			return nil, errors.Wrap(err, "calling toggle-chat-pin endpoint")
		}
	}

	chat, err := r.read(id)
	if err != nil {
		return nil, err
	}
	chat.Pinned = pinned
	if pinned {
		now := time.Now().UTC()
		chat.PinnedAt = &now
	} else {
		chat.PinnedAt = nil
	}
	if err := r.write(chat); err != nil {
		return nil, err
	}
	return chat, nil
}
