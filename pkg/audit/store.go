package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Store persists audit events to the messages table.
type Store struct {
	db       *sql.DB
	hostname string
	appName  string
	pid      int
}

// NewStore opens a database connection for audit persistence.
func NewStore(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	return NewStoreWithDB(db), nil
}

// NewStoreWithDB wraps an existing database handle.
func NewStoreWithDB(db *sql.DB) *Store {
	hostname, _ := os.Hostname()
	return &Store{
		db:       db,
		hostname: hostname,
		appName:  "forge",
		pid:      os.Getpid(),
	}
}

// Save writes an event row. Columns mirror the RFC5424 message parts.
func (s *Store) Save(event Event) error {
	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return fmt.Errorf("failed to marshal structured data: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.Facility(),
		int(event.Severity()),
		time.Now().UTC(),
		s.hostname,
		s.appName,
		fmt.Sprintf("%d", s.pid),
		event.MessageID(),
		sdata,
		event.Message(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit message: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnableStore configures the package-level store used by Log.
func EnableStore(databaseURL string) error {
	store, err := NewStore(databaseURL)
	if err != nil {
		return err
	}
	DefaultStore = store
	return nil
}
