package user

import (
	"encoding/json"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"github.com/scylladb/go-set/strset"

	"github.com/malonaz/chatd/store"
)

// Preferences holds layout and feature toggles.
type Preferences struct {
	Layout                   string   `json:"layout"`
	PromptSuggestions        *bool    `json:"prompt_suggestions,omitempty"`
	ShowToolInvocations      *bool    `json:"show_tool_invocations,omitempty"`
	ShowConversationPreviews *bool    `json:"show_conversation_previews,omitempty"`
	MultiModelEnabled        *bool    `json:"multi_model_enabled,omitempty"`
	HiddenModels             []string `json:"hidden_models"`
}

func boolPtr(b bool) *bool { return &b }

// DefaultPreferences returns the preferences used before the user changes
// anything.
func DefaultPreferences() Preferences {
	return Preferences{
		Layout:                   "fullscreen",
		PromptSuggestions:        boolPtr(true),
		ShowToolInvocations:      boolPtr(true),
		ShowConversationPreviews: boolPtr(true),
		MultiModelEnabled:        boolPtr(false),
		HiddenModels:             []string{},
	}
}

// GetPreferences reads stored preferences overlaid onto the defaults, so a
// partial stored document still yields a complete record.
func (s *Store) GetPreferences() (Preferences, error) {
	preferences := DefaultPreferences()

	record, err := s.objects.ReadOne(store.TableKV, store.KeyPreferences)
	if errors.Is(err, store.ErrNotFound) {
		return preferences, nil
	}
	if err != nil {
		return preferences, errors.Wrap(err, "reading preferences")
	}

	stored := Preferences{}
	if err := json.Unmarshal(record.Payload, &stored); err != nil {
		return preferences, errors.Wrap(err, "unmarshaling preferences")
	}
	if err := mergo.Merge(&preferences, stored, mergo.WithOverride); err != nil {
		return preferences, errors.Wrap(err, "merging preferences")
	}
	return preferences, nil
}

// SetPreferences overlays a partial update onto the current preferences and
// persists the result. The hidden-model list is deduplicated. The profile
// record's embedded preferences are kept in sync.
func (s *Store) SetPreferences(update Preferences) (Preferences, error) {
	current, err := s.GetPreferences()
	if err != nil {
		return current, err
	}
	if err := mergo.Merge(&current, update, mergo.WithOverride); err != nil {
		return current, errors.Wrap(err, "merging preferences update")
	}
	if current.HiddenModels != nil {
		current.HiddenModels = strset.New(current.HiddenModels...).List()
	}

	payload, err := json.Marshal(current)
	if err != nil {
		return current, errors.Wrap(err, "marshaling preferences")
	}
	if err := s.objects.Write(store.TableKV, store.KeyPreferences, payload); err != nil {
		return current, errors.Wrap(err, "writing preferences")
	}

	if user, err := s.GetOrCreateUser(); err == nil {
		user.Preferences = current
		if err := s.saveUser(user); err != nil {
			return current, err
		}
	}
	return current, nil
}
