package chats

import (
	"github.com/pkg/errors"

	"github.com/malonaz/chatd/store"
)

// Delete removes a chat and its message list. Deleting a chat that does not
// exist is a no-op, not an error.
func (r *Repository) Delete(id string) error {
	if err := r.objects.Delete(store.TableChats, id); err != nil {
		return errors.Wrap(err, "deleting chat")
	}
	if err := r.objects.Delete(store.TableMessages, id); err != nil {
		return errors.Wrap(err, "deleting chat messages")
	}
	return nil
}
