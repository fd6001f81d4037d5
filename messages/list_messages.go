package messages

// List returns a chat's messages sorted ascending by creation time. A chat
// with no stored document yields an empty slice.
func (r *Repository) List(chatID string) ([]*Message, error) {
	msgs, err := r.read(chatID)
	if err != nil {
		return nil, err
	}
	sortByCreatedAt(msgs)
	return msgs, nil
}
