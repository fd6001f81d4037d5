// Package messages implements the message repository. Each chat's transcript
// is stored as a single ordered-list document in the messages table, keyed by
// the chat id.
package messages

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/malonaz/chatd/store"
)

// Repository implements message operations over the local object store.
type Repository struct {
	objects store.ObjectStore
}

// NewRepository instantiates a repository.
func NewRepository(objects store.ObjectStore) *Repository {
	return &Repository{objects: objects}
}

func (r *Repository) read(chatID string) ([]*Message, error) {
	record, err := r.objects.ReadOne(store.TableMessages, chatID)
	if errors.Is(err, store.ErrNotFound) {
		return []*Message{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading messages")
	}
	document := &chatMessages{}
	if err := json.Unmarshal(record.Payload, document); err != nil {
		return nil, errors.Wrap(err, "unmarshaling messages")
	}
	if document.Messages == nil {
		return []*Message{}, nil
	}
	return document.Messages, nil
}

func (r *Repository) write(chatID string, msgs []*Message) error {
	payload, err := json.Marshal(&chatMessages{ID: chatID, Messages: msgs})
	if err != nil {
		return errors.Wrap(err, "marshaling messages")
	}
	if err := r.objects.Write(store.TableMessages, chatID, payload); err != nil {
		return errors.Wrap(err, "writing messages")
	}
	return nil
}

// sortByCreatedAt re-applies display order; insertion order alone is not
// guaranteed.
func sortByCreatedAt(msgs []*Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}
