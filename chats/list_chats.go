package chats

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/malonaz/chatd/store"
)

// List returns every chat, most recently updated first. Chats without an
// update timestamp fall back to their creation timestamp.
func (r *Repository) List() ([]*Chat, error) {
	records, err := r.objects.ReadAll(store.TableChats)
	if err != nil {
		return nil, errors.Wrap(err, "reading chats")
	}

	chats := make([]*Chat, 0, len(records))
	for _, record := range records {
		chat := &Chat{}
		if err := json.Unmarshal(record.Payload, chat); err != nil {
			return nil, errors.Wrap(err, "unmarshaling chat")
		}
		chats = append(chats, chat)
	}

	SortByRecency(chats)
	return chats, nil
}
