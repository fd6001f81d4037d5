package user

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malonaz/chatd/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	objects, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { objects.Close() })
	return NewStore(objects)
}

func TestGetOrCreateUserIsIdempotent(t *testing.T) {
	userStore := newTestStore(t)

	first, err := userStore.GetOrCreateUser()
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "Local User", first.DisplayName)

	second, err := userStore.GetOrCreateUser()
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestGetPreferencesDefaults(t *testing.T) {
	userStore := newTestStore(t)

	preferences, err := userStore.GetPreferences()
	require.NoError(t, err)
	require.Equal(t, "fullscreen", preferences.Layout)
	require.NotNil(t, preferences.PromptSuggestions)
	require.True(t, *preferences.PromptSuggestions)
	require.NotNil(t, preferences.MultiModelEnabled)
	require.False(t, *preferences.MultiModelEnabled)
	require.Empty(t, preferences.HiddenModels)
}

func TestSetPreferencesPartialUpdate(t *testing.T) {
	userStore := newTestStore(t)

	disabled := false
	updated, err := userStore.SetPreferences(Preferences{
		Layout:            "sidebar",
		PromptSuggestions: &disabled,
	})
	require.NoError(t, err)
	require.Equal(t, "sidebar", updated.Layout)
	require.False(t, *updated.PromptSuggestions)
	// Fields the update left out keep their defaults.
	require.True(t, *updated.ShowToolInvocations)

	// A stored false still wins over the default true on the next read.
	read, err := userStore.GetPreferences()
	require.NoError(t, err)
	require.False(t, *read.PromptSuggestions)
	require.Equal(t, "sidebar", read.Layout)
}

func TestSetPreferencesDeduplicatesHiddenModels(t *testing.T) {
	userStore := newTestStore(t)

	updated, err := userStore.SetPreferences(Preferences{
		HiddenModels: []string{"gpt-4o", "gpt-4o", "o3-mini"},
	})
	require.NoError(t, err)
	require.Len(t, updated.HiddenModels, 2)
	require.ElementsMatch(t, []string{"gpt-4o", "o3-mini"}, updated.HiddenModels)
}

func TestSetPreferencesSyncsProfile(t *testing.T) {
	userStore := newTestStore(t)

	_, err := userStore.GetOrCreateUser()
	require.NoError(t, err)

	_, err = userStore.SetPreferences(Preferences{Layout: "sidebar"})
	require.NoError(t, err)

	user, err := userStore.GetOrCreateUser()
	require.NoError(t, err)
	require.Equal(t, "sidebar", user.Preferences.Layout)
}

func TestSetFavoriteModelsDeduplicates(t *testing.T) {
	userStore := newTestStore(t)

	user, err := userStore.SetFavoriteModels([]string{"gpt-4o", "gpt-4o", "claude-3-5-sonnet-20241022"})
	require.NoError(t, err)
	require.Len(t, user.FavoriteModels, 2)
	require.ElementsMatch(t, []string{"gpt-4o", "claude-3-5-sonnet-20241022"}, user.FavoriteModels)
}

func TestAPIKeysRoundTrip(t *testing.T) {
	userStore := newTestStore(t)

	keys, err := userStore.GetAPIKeys()
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, userStore.SetAPIKey("openai", "sk-test"))
	require.NoError(t, userStore.SetAPIKey("anthropic", "ak-test"))

	keys, err = userStore.GetAPIKeys()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"openai": "sk-test", "anthropic": "ak-test"}, keys)

	require.NoError(t, userStore.RemoveAPIKey("openai"))
	require.NoError(t, userStore.RemoveAPIKey("openai")) // missing key removal is a no-op

	keys, err = userStore.GetAPIKeys()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"anthropic": "ak-test"}, keys)
}
