package user

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/malonaz/chatd/store"
)

// GetAPIKeys returns the provider→key map. Missing document yields an empty
// map.
func (s *Store) GetAPIKeys() (map[string]string, error) {
	record, err := s.objects.ReadOne(store.TableKV, store.KeyAPIKeys)
	if errors.Is(err, store.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading api keys")
	}
	keys := map[string]string{}
	if err := json.Unmarshal(record.Payload, &keys); err != nil {
		return nil, errors.Wrap(err, "unmarshaling api keys")
	}
	return keys, nil
}

// SetAPIKey stores a key for a provider.
func (s *Store) SetAPIKey(provider, key string) error {
	keys, err := s.GetAPIKeys()
	if err != nil {
		return err
	}
	keys[provider] = key
	return s.writeAPIKeys(keys)
}

// RemoveAPIKey deletes a provider's key. Removing a missing key is a no-op.
func (s *Store) RemoveAPIKey(provider string) error {
	keys, err := s.GetAPIKeys()
	if err != nil {
		return err
	}
	delete(keys, provider)
	return s.writeAPIKeys(keys)
}

func (s *Store) writeAPIKeys(keys map[string]string) error {
	payload, err := json.Marshal(keys)
	if err != nil {
		return errors.Wrap(err, "marshaling api keys")
	}
	if err := s.objects.Write(store.TableKV, store.KeyAPIKeys, payload); err != nil {
		return errors.Wrap(err, "writing api keys")
	}
	return nil
}
