package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const currentVersion uint16 = 1

func (b *BadgerBackend) runMigrations() error {
	return b.Update(func(txn *badger.Txn) error {
		var version uint16

		item, err := txn.Get([]byte{dbVersionKey})
		if err == badger.ErrKeyNotFound {
			version = 0
		} else if err != nil {
			return err
		} else {
			if err := item.Value(func(val []byte) error {
				if len(val) != 2 {
					return fmt.Errorf("bad version value %x", val)
				}
				version = binary.BigEndian.Uint16(val)
				return nil
			}); err != nil {
				return err
			}
		}

		if version > currentVersion {
			return fmt.Errorf("database version %d is newer than this program (%d)", version, currentVersion)
		}

		// do the migrations in increasing steps (there is no rollback)
		//

		if version < 1 {
			// fresh database, nothing to convert
			if b.Logger != nil {
				b.Logger.Debug().Str("db", "badger").Msg("initializing database at version 1")
			}
		}

		return b.bumpVersion(txn, currentVersion)
	})
}

func (b *BadgerBackend) bumpVersion(txn *badger.Txn, version uint16) error {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, version)
	return txn.Set([]byte{dbVersionKey}, buf)
}
