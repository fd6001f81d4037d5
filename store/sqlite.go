package store

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements ObjectStore on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ ObjectStore = (*SQLiteStore)(nil)

// New opens (and if needed creates) the store at dbPath.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			tbl     TEXT NOT NULL,
			id      TEXT NOT NULL,
			payload TEXT NOT NULL,
			PRIMARY KEY (tbl, id)
		)
	`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating records table")
	}

	return &SQLiteStore{db: db}, nil
}

// Write upserts a record. REPLACE INTO handles both insert and update cases.
func (s *SQLiteStore) Write(table, id string, payload []byte) error {
	_, err := s.db.Exec(`
		REPLACE INTO records (tbl, id, payload)
		VALUES (?, ?, ?)
	`, table, id, string(payload))
	if err != nil {
		return wrapUnavailable(err, "writing record")
	}
	return nil
}

// ReadAll returns every record in a table, in no particular order.
func (s *SQLiteStore) ReadAll(table string) ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, payload FROM records WHERE tbl = ?`, table)
	if err != nil {
		return nil, wrapUnavailable(err, "querying records")
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var payload string
		if err := rows.Scan(&record.ID, &payload); err != nil {
			return nil, errors.Wrap(err, "scanning record row")
		}
		record.Payload = []byte(payload)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating record rows")
	}
	return records, nil
}

// ReadOne returns the record under id, or ErrNotFound.
func (s *SQLiteStore) ReadOne(table, id string) (Record, error) {
	var payload string
	err := s.db.QueryRow(`
		SELECT payload FROM records WHERE tbl = ? AND id = ?
	`, table, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, wrapUnavailable(err, "querying record")
	}
	return Record{ID: id, Payload: []byte(payload)}, nil
}

// Delete removes the record under id. Deleting a missing id is a no-op.
func (s *SQLiteStore) Delete(table, id string) error {
	_, err := s.db.Exec(`DELETE FROM records WHERE tbl = ? AND id = ?`, table, id)
	if err != nil {
		return wrapUnavailable(err, "deleting record")
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func wrapUnavailable(err error, msg string) error {
	return errors.Wrap(errors.WithMessage(ErrUnavailable, err.Error()), msg)
}
