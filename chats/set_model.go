package chats

import (
	"context"

	"github.com/pkg/errors"
)

// SetModel updates a chat's model. It deliberately does not bump the update
// timestamp: switching models mid-conversation must not reorder the chat list.
func (r *Repository) SetModel(ctx context.Context, id, model string) (*Chat, error) {
	if r.client != nil {
		if err := r.client.UpdateChatModel(ctx, id, model); err != nil {
			return nil, errors.Wrap(err, "calling update-chat-model endpoint")
		}
	}

	chat, err := r.read(id)
	if err != nil {
		return nil, err
	}
	chat.Model = model
	if err := r.write(chat); err != nil {
		return nil, err
	}
	return chat, nil
}
