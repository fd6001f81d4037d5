package state

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/malonaz/chatd/chats"
)

func newChatFixture(t *testing.T) (*ChatProvider, *chats.Repository, *memStore, *countingNotifier) {
	t.Helper()
	objects := newMemStore()
	repo := chats.NewRepository(objects, nil)
	notifier := &countingNotifier{}
	provider := NewChatProvider(repo, notifier)
	return provider, repo, objects, notifier
}

func mustCreate(t *testing.T, provider *ChatProvider, title string) *chats.Chat {
	t.Helper()
	chat, err := provider.Create(context.Background(), &chats.CreateChatRequest{
		UserID: "u1",
		Title:  title,
		Model:  "gpt-4o",
	})
	require.NoError(t, err)
	return chat
}

func TestCreateReconcilesPlaceholder(t *testing.T) {
	provider, _, _, notifier := newChatFixture(t)

	chat := mustCreate(t, provider, "Test")

	cached := provider.Chats()
	require.Len(t, cached, 1)
	require.Equal(t, chat.ID, cached[0].ID)
	require.False(t, strings.HasPrefix(cached[0].ID, "optimistic-"),
		"placeholder must be replaced by the authoritative record")
	require.Zero(t, notifier.count())
}

func TestCreateRollsBackOnFailure(t *testing.T) {
	provider, _, objects, notifier := newChatFixture(t)
	mustCreate(t, provider, "existing")

	objects.setFailWrites(true)
	_, err := provider.Create(context.Background(), &chats.CreateChatRequest{UserID: "u1", Title: "doomed"})
	require.Error(t, err)

	cached := provider.Chats()
	require.Len(t, cached, 1)
	require.Equal(t, "existing", cached[0].Title)
	require.Equal(t, 1, notifier.count(), "exactly one notification per failed mutation")
}

func TestRenameRollsBackOnStorageFailure(t *testing.T) {
	provider, _, objects, notifier := newChatFixture(t)
	chat := mustCreate(t, provider, "Original")

	objects.setFailWrites(true)
	err := provider.Rename(chat.ID, "Renamed")
	require.Error(t, err)

	require.Equal(t, "Original", provider.GetByID(chat.ID).Title)
	require.Equal(t, 1, notifier.count())
}

func TestRenameReordersAndReconciles(t *testing.T) {
	provider, repo, _, _ := newChatFixture(t)
	first := mustCreate(t, provider, "first")
	time.Sleep(5 * time.Millisecond)
	second := mustCreate(t, provider, "second")

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, provider.Rename(first.ID, "first renamed"))

	cached := provider.Chats()
	require.Equal(t, first.ID, cached[0].ID, "renamed chat moves to the top")
	require.Equal(t, second.ID, cached[1].ID)

	// The cache matches the repository's authoritative record.
	stored, err := repo.Get(first.ID)
	require.NoError(t, err)
	require.True(t, stored.UpdatedAt.Equal(cached[0].UpdatedAt))
}

func TestDeleteRemovesFromCache(t *testing.T) {
	provider, _, _, _ := newChatFixture(t)
	chat := mustCreate(t, provider, "to delete")
	keep := mustCreate(t, provider, "to keep")

	require.NoError(t, provider.Delete(chat.ID))

	cached := provider.Chats()
	require.Len(t, cached, 1)
	require.Equal(t, keep.ID, cached[0].ID)
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	provider, _, objects, notifier := newChatFixture(t)
	chat := mustCreate(t, provider, "survivor")

	objects.setFailWrites(true)
	require.Error(t, provider.Delete(chat.ID))

	require.NotNil(t, provider.GetByID(chat.ID))
	require.Equal(t, 1, notifier.count())
}

func TestSetModelKeepsOrder(t *testing.T) {
	provider, _, _, _ := newChatFixture(t)
	first := mustCreate(t, provider, "first")
	time.Sleep(5 * time.Millisecond)
	second := mustCreate(t, provider, "second")

	require.NoError(t, provider.SetModel(context.Background(), first.ID, "claude-3-5-sonnet-20241022"))

	cached := provider.Chats()
	require.Equal(t, second.ID, cached[0].ID, "model switch must not reorder the list")
	require.Equal(t, "claude-3-5-sonnet-20241022", provider.GetByID(first.ID).Model)
}

func TestSetPinnedRoundTrip(t *testing.T) {
	provider, _, _, _ := newChatFixture(t)
	chat := mustCreate(t, provider, "pin me")

	require.NoError(t, provider.SetPinned(context.Background(), chat.ID, true))
	pinned := provider.GetByID(chat.ID)
	require.True(t, pinned.Pinned)
	require.NotNil(t, pinned.PinnedAt)

	require.NoError(t, provider.SetPinned(context.Background(), chat.ID, false))
	unpinned := provider.GetByID(chat.ID)
	require.False(t, unpinned.Pinned)
	require.Nil(t, unpinned.PinnedAt)
}

func TestPinnedChatsOrder(t *testing.T) {
	provider, _, _, _ := newChatFixture(t)
	c1 := mustCreate(t, provider, "c1")
	c2 := mustCreate(t, provider, "c2")
	unpinned := mustCreate(t, provider, "unpinned")

	require.NoError(t, provider.SetPinned(context.Background(), c1.ID, true))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, provider.SetPinned(context.Background(), c2.ID, true))

	pinned := provider.PinnedChats()
	require.Len(t, pinned, 2)
	require.Equal(t, c2.ID, pinned[0].ID, "most recently pinned first")
	require.Equal(t, c1.ID, pinned[1].ID)
	require.NotContains(t, []string{pinned[0].ID, pinned[1].ID}, unpinned.ID)
}

func TestPinnedChatsExcludesProjectChats(t *testing.T) {
	provider, _, _, _ := newChatFixture(t)
	chat, err := provider.Create(context.Background(), &chats.CreateChatRequest{
		UserID:    "u1",
		Title:     "project chat",
		ProjectID: "p1",
	})
	require.NoError(t, err)
	require.NoError(t, provider.SetPinned(context.Background(), chat.ID, true))

	require.Empty(t, provider.PinnedChats())
}

func TestBumpReorders(t *testing.T) {
	provider, _, _, _ := newChatFixture(t)
	first := mustCreate(t, provider, "first")
	time.Sleep(5 * time.Millisecond)
	mustCreate(t, provider, "second")

	time.Sleep(5 * time.Millisecond)
	provider.Bump(first.ID)

	require.Equal(t, first.ID, provider.Chats()[0].ID)
}

func TestRefreshRebuildsFromStore(t *testing.T) {
	provider, repo, _, _ := newChatFixture(t)
	chat := mustCreate(t, provider, "durable")

	provider.Reset()
	require.Empty(t, provider.Chats())

	require.NoError(t, provider.Refresh())
	cached := provider.Chats()
	require.Len(t, cached, 1)
	require.Equal(t, chat.ID, cached[0].ID)

	// The store stays authoritative: direct repository writes show up after
	// a refresh.
	_, err := repo.Rename(chat.ID, "renamed behind the cache")
	require.NoError(t, err)
	require.NoError(t, provider.Refresh())
	require.Equal(t, "renamed behind the cache", provider.GetByID(chat.ID).Title)
}
