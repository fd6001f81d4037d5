package store

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWriteAndReadOne(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write(TableChats, "c1", []byte(`{"id":"c1"}`)))

	record, err := s.ReadOne(TableChats, "c1")
	require.NoError(t, err)
	require.Equal(t, "c1", record.ID)
	require.JSONEq(t, `{"id":"c1"}`, string(record.Payload))
}

func TestWriteReplaces(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write(TableChats, "c1", []byte(`{"title":"a"}`)))
	require.NoError(t, s.Write(TableChats, "c1", []byte(`{"title":"b"}`)))

	record, err := s.ReadOne(TableChats, "c1")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"b"}`, string(record.Payload))
}

func TestReadOneNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ReadOne(TableChats, "missing")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestReadAllScopedToTable(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write(TableChats, "c1", []byte(`{}`)))
	require.NoError(t, s.Write(TableChats, "c2", []byte(`{}`)))
	require.NoError(t, s.Write(TableMessages, "c1", []byte(`{}`)))

	records, err := s.ReadAll(TableChats)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write(TableChats, "c1", []byte(`{}`)))
	require.NoError(t, s.Delete(TableChats, "c1"))
	require.NoError(t, s.Delete(TableChats, "c1"))
	require.NoError(t, s.Delete(TableChats, "never-existed"))

	_, err := s.ReadOne(TableChats, "c1")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteScopedToRecord(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write(TableChats, "c1", []byte(`{"title":"one"}`)))
	require.NoError(t, s.Write(TableChats, "c2", []byte(`{"title":"two"}`)))
	require.NoError(t, s.Write(TableChats, "c1", []byte(`{"title":"one-updated"}`)))

	record, err := s.ReadOne(TableChats, "c2")
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"two"}`, string(record.Payload))
}
