package chats

import (
	"time"
)

// Rename updates a chat's title and bumps its update timestamp.
func (r *Repository) Rename(id, title string) (*Chat, error) {
	chat, err := r.read(id)
	if err != nil {
		return nil, err
	}
	chat.Title = title
	chat.UpdatedAt = time.Now().UTC()
	if err := r.write(chat); err != nil {
		return nil, err
	}
	return chat, nil
}
