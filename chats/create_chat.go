package chats

import (
	"context"
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CreateChatRequest holds the parameters for creating a chat.
type CreateChatRequest struct {
	UserID    string
	Title     string
	Model     string
	ProjectID string
}

// Create persists a new chat record and mirrors it to the create-chat
// compatibility endpoint. Fields echoed back by the endpoint take precedence
// over the locally generated ones.
func (r *Repository) Create(ctx context.Context, req *CreateChatRequest) (*Chat, error) {
	if req.UserID == "" {
		return nil, errors.New("user id is required")
	}

	now := time.Now().UTC()
	chat := &Chat{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Model:     req.Model,
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		Public:    true,
		Pinned:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if chat.Title == "" {
		chat.Title = "New Chat"
	}

	if r.client != nil {
		echoed, err := r.client.CreateChat(ctx, chat)
		if err != nil {
			return nil, errors.Wrap(err, "calling create-chat endpoint")
		}
		// Echoed fields win over locally generated ones.
		if err := mergo.Merge(chat, echoed, mergo.WithOverride); err != nil {
			return nil, errors.Wrap(err, "merging echoed chat")
		}
	}

	if err := r.write(chat); err != nil {
		return nil, err
	}
	return chat, nil
}
