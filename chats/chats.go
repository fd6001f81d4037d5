// Package chats implements the chat repository: CRUD over the chats table
// of the local object store, with each mutation mirrored to the remote
// compatibility endpoints.
package chats

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/malonaz/chatd/store"
)

// CompatClient mirrors mutations to the chat-lifecycle compatibility
// endpoints. The endpoints perform no durable persistence; CreateChat
// returns the echoed chat for client-side merging.
type CompatClient interface {
	CreateChat(ctx context.Context, chat *Chat) (*Chat, error)
	UpdateChatModel(ctx context.Context, chatID, model string) error
	ToggleChatPin(ctx context.Context, chatID string, pinned bool) error
}

// Repository implements chat CRUD over the local object store.
type Repository struct {
	objects store.ObjectStore
	client  CompatClient
}

// NewRepository instantiates a repository. client may be nil, in which case
// mutations are local-only.
func NewRepository(objects store.ObjectStore, client CompatClient) *Repository {
	return &Repository{objects: objects, client: client}
}

// read a single chat record, decoded.
func (r *Repository) read(id string) (*Chat, error) {
	record, err := r.objects.ReadOne(store.TableChats, id)
	if err != nil {
		return nil, err
	}
	chat := &Chat{}
	if err := json.Unmarshal(record.Payload, chat); err != nil {
		return nil, errors.Wrap(err, "unmarshaling chat")
	}
	return chat, nil
}

// write a single chat record, encoded.
func (r *Repository) write(chat *Chat) error {
	payload, err := json.Marshal(chat)
	if err != nil {
		return errors.Wrap(err, "marshaling chat")
	}
	if err := r.objects.Write(store.TableChats, chat.ID, payload); err != nil {
		return errors.Wrap(err, "writing chat")
	}
	return nil
}
