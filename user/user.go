// Package user manages the single local profile, its preferences and its
// API-key map. Exactly one logical user exists per profile; everything lives
// under fixed keys in the object store's kv table.
package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"

	"github.com/malonaz/chatd/store"
)

// User is the local profile record.
type User struct {
	ID             string      `json:"id"`
	DisplayName    string      `json:"display_name"`
	Email          string      `json:"email"`
	CreatedAt      time.Time   `json:"created_at"`
	Anonymous      bool        `json:"anonymous"`
	FavoriteModels []string    `json:"favorite_models"`
	Premium        bool        `json:"premium"`
	Preferences    Preferences `json:"preferences"`
}

// Store wraps the object store's kv table for user state.
type Store struct {
	objects store.ObjectStore
}

// NewStore instantiates a user store.
func NewStore(objects store.ObjectStore) *Store {
	return &Store{objects: objects}
}

// GetOrCreateUser returns the local profile, creating it on first use.
func (s *Store) GetOrCreateUser() (*User, error) {
	record, err := s.objects.ReadOne(store.TableKV, store.KeyUser)
	if err == nil {
		user := &User{}
		if err := json.Unmarshal(record.Payload, user); err != nil {
			return nil, errors.Wrap(err, "unmarshaling user")
		}
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, errors.Wrap(err, "reading user")
	}

	user := &User{
		ID:             uuid.New().String(),
		DisplayName:    "Local User",
		Email:          "local@chatd.local",
		CreatedAt:      time.Now().UTC(),
		FavoriteModels: []string{},
		Preferences:    DefaultPreferences(),
	}
	if err := s.saveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetFavoriteModels replaces the favorite-model list, deduplicated.
func (s *Store) SetFavoriteModels(models []string) (*User, error) {
	user, err := s.GetOrCreateUser()
	if err != nil {
		return nil, err
	}
	set := strset.New(models...)
	user.FavoriteModels = set.List()
	if err := s.saveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) saveUser(user *User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshaling user")
	}
	if err := s.objects.Write(store.TableKV, store.KeyUser, payload); err != nil {
		return errors.Wrap(err, "writing user")
	}
	return nil
}
