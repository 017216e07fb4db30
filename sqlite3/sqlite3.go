package sqlite3

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/internal/pending"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// FileName is the database file used inside the cache directory.
const FileName = "events.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS event (
  id text NOT NULL PRIMARY KEY,
  raw blob NOT NULL
);
`

var _ nostrlikes.Store = (*SQLite3Backend)(nil)

type SQLite3Backend struct {
	sync.Mutex
	*sqlx.DB
	DatabaseURL string

	pending pending.Events
}

func (b *SQLite3Backend) Init() error {
	// plain paths get their directory created, "file:" urls and ":memory:" are left to the driver
	if !strings.HasPrefix(b.DatabaseURL, "file:") && !strings.HasPrefix(b.DatabaseURL, ":") {
		if err := os.MkdirAll(filepath.Dir(b.DatabaseURL), 0755); err != nil {
			return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
		}
	}

	db, err := sqlx.Connect("sqlite3", b.DatabaseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	// sqlite only allows one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("%w: failed to create schema: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	b.DB = db
	return nil
}

// Close drops whatever was saved since the last Flush.
func (b *SQLite3Backend) Close() {
	b.pending.Reset()
	b.DB.Close()
}
