package chats

// Get returns a single chat, or store.ErrNotFound.
func (r *Repository) Get(id string) (*Chat, error) {
	return r.read(id)
}
