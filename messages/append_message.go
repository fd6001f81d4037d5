package messages

// Append adds a message to the end of a chat's list and writes the full list
// back. Not atomic across concurrent appends to the same chat: we assume a
// single active conversation stream per chat.
func (r *Repository) Append(chatID string, msg *Message) error {
	current, err := r.read(chatID)
	if err != nil {
		return err
	}
	return r.write(chatID, append(current, msg))
}
