package badger

import (
	"encoding/hex"
	"fmt"

	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/internal/pending"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// DirName is the directory used inside the cache directory.
const DirName = "badger"

const (
	dbVersionKey      byte = 255
	rawEventKeyPrefix byte = 0
)

var _ nostrlikes.Store = (*BadgerBackend)(nil)

// BadgerBackend stores each event under its id. Saved events are held in memory
// until Flush commits them together.
type BadgerBackend struct {
	Path   string
	Logger *zerolog.Logger

	*badger.DB
	pending pending.Events
}

func (b *BadgerBackend) Init() error {
	opts := badger.DefaultOptions(b.Path)
	if b.Logger != nil {
		opts = opts.WithLogger(badgerLogger{b.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}
	b.DB = db

	if err := b.runMigrations(); err != nil {
		return fmt.Errorf("%w: error running migrations: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	return nil
}

func (b *BadgerBackend) Close() {
	b.pending.Reset()
	b.DB.Close()
}

func eventKey(id string) ([]byte, error) {
	raw, err := hex.DecodeString(id)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("invalid event id '%s'", id)
	}
	return append([]byte{rawEventKeyPrefix}, raw...), nil
}

type badgerLogger struct{ *zerolog.Logger }

func (l badgerLogger) Errorf(f string, v ...any)   { l.Error().Str("db", "badger").Msgf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...any) { l.Warn().Str("db", "badger").Msgf(f, v...) }
func (l badgerLogger) Infof(f string, v ...any)    { l.Debug().Str("db", "badger").Msgf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...any)   { l.Trace().Str("db", "badger").Msgf(f, v...) }
