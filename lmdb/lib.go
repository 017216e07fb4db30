package lmdb

import (
	"fmt"
	"os"

	"github.com/PowerDNS/lmdb-go/lmdb"
	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/internal/pending"
)

// DirName is the directory used inside the cache directory.
const DirName = "lmdb"

var _ nostrlikes.Store = (*LMDBBackend)(nil)

type LMDBBackend struct {
	Path    string
	MapSize int64

	lmdbEnv    *lmdb.Env
	extraFlags uint // (for debugging and testing)

	rawEventStore lmdb.DBI
	pending       pending.Events
}

func (b *LMDBBackend) Init() error {
	// create directory if it doesn't exist and open it
	if err := os.MkdirAll(b.Path, 0755); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}

	if err := b.initialize(); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}
	return nil
}

func (b *LMDBBackend) Close() {
	b.pending.Reset()
	b.lmdbEnv.Close()
}

func (b *LMDBBackend) initialize() error {
	env, err := lmdb.NewEnv()
	if err != nil {
		return err
	}

	env.SetMaxDBs(1)
	env.SetMaxReaders(16)
	if b.MapSize == 0 {
		env.SetMapSize(1 << 30) // 1GB
	} else {
		env.SetMapSize(b.MapSize)
	}

	if err := env.Open(b.Path, lmdb.NoTLS|b.extraFlags, 0644); err != nil {
		return err
	}
	b.lmdbEnv = env

	return b.lmdbEnv.Update(func(txn *lmdb.Txn) error {
		dbi, err := txn.OpenDBI("raw", lmdb.Create)
		if err != nil {
			return err
		}
		b.rawEventStore = dbi
		return nil
	})
}
