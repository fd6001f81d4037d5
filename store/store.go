// Package store implements the local object store: a per-profile persistent
// key-value store with logical tables, each record an opaque JSON document
// keyed by id. Durable state lives here and nowhere else; in-memory caches
// are derived views.
package store

import (
	"github.com/pkg/errors"
)

// Logical tables and fixed keys used by the application.
const (
	TableChats    = "chats"
	TableMessages = "messages"
	TableKV       = "kv"

	KeyUser        = "user"
	KeyPreferences = "preferences"
	KeyAPIKeys     = "api_keys"
)

// ErrNotFound is returned by ReadOne when no record exists under the id.
var ErrNotFound = errors.New("record not found")

// ErrUnavailable is returned when the backing store cannot be reached.
// Callers surface a notification and roll back; they must not crash.
var ErrUnavailable = errors.New("storage unavailable")

// Record is a stored document and its key.
type Record struct {
	ID      string
	Payload []byte
}

// ObjectStore is the storage port. Write has create-or-replace semantics,
// not merge; each write is scoped to the record it touches.
type ObjectStore interface {
	Write(table, id string, payload []byte) error
	ReadAll(table string) ([]Record, error)
	ReadOne(table, id string) (Record, error)
	Delete(table, id string) error
}
