package badger

import (
	"path/filepath"
	"testing"

	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/internal/storetest"
)

func TestStoreContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), DirName)
	storetest.Run(t, func() nostrlikes.Store { return &BadgerBackend{Path: path} }, true)
}
