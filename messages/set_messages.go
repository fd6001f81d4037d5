package messages

// ReplaceAll overwrites a chat's message list wholesale. Used when editing or
// deleting an earlier message requires recomputing the full transcript.
func (r *Repository) ReplaceAll(chatID string, msgs []*Message) error {
	return r.write(chatID, msgs)
}

// Clear replaces a chat's message list with an empty one. The key is kept so
// read semantics stay uniform.
func (r *Repository) Clear(chatID string) error {
	return r.write(chatID, []*Message{})
}
