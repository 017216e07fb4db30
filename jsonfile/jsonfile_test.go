package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/internal/storetest"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)
	storetest.Run(t, func() nostrlikes.Store { return &Backend{Path: path} }, true)
}

func TestMissingFileIsEmpty(t *testing.T) {
	b := &Backend{Path: filepath.Join(t.TempDir(), "nope", FileName)}
	require.NoError(t, b.Init())
	require.Equal(t, 0, b.Len())

	// loading must not create anything
	_, err := os.Stat(filepath.Dir(b.Path))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), FileName)
	events := storetest.Events(3)

	b := &Backend{Path: path}
	require.NoError(t, b.Init())
	for _, evt := range events {
		require.NoError(t, b.SaveEvent(ctx, evt))
	}
	require.NoError(t, b.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 3)
	for _, evt := range events {
		entry, ok := raw[evt.ID]
		require.True(t, ok, "missing %s", evt.ID)
		require.Equal(t, evt.ID, entry["id"])
		require.Equal(t, evt.PubKey, entry["pubkey"])
		require.Equal(t, evt.Content, entry["content"])
		require.Equal(t, evt.Sig, entry["sig"])
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestFlushEmptyCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", FileName)
	b := &Backend{Path: path}
	require.NoError(t, b.Init())
	require.NoError(t, b.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))
}

func TestCorruptFile(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":    "not json at all",
		"truncated":  `{"abc": {"id": "abc", "kind"`,
		"array":      `[1, 2, 3]`,
		"null entry": `{"abc": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			b := &Backend{Path: path}
			require.ErrorIs(t, b.Init(), nostrlikes.ErrCacheCorrupt)
		})
	}
}

func TestNullFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	b := &Backend{Path: path}
	require.NoError(t, b.Init())
	require.NoError(t, b.SaveEvent(context.Background(), storetest.Events(1)[0]))
	require.Equal(t, 1, b.Len())
}

func TestUnreadablePathIsCorrupt(t *testing.T) {
	// a directory where the file should be
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.Mkdir(path, 0755))

	b := &Backend{Path: path}
	require.ErrorIs(t, b.Init(), nostrlikes.ErrCacheCorrupt)
}

func TestFlushParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	b := &Backend{Path: filepath.Join(blocker, FileName)}
	require.NoError(t, b.Init())
	require.NoError(t, b.SaveEvent(context.Background(), storetest.Events(1)[0]))
	require.ErrorIs(t, b.Flush(), nostrlikes.ErrCachePersist)
}

func TestFailedFlushKeepsPreviousFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	events := storetest.Events(2)

	b := &Backend{Path: path}
	require.NoError(t, b.Init())
	require.NoError(t, b.SaveEvent(ctx, events[0]))
	require.NoError(t, b.Flush())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0555))
	defer os.Chmod(dir, 0755)

	require.NoError(t, b.SaveEvent(ctx, events[1]))
	require.ErrorIs(t, b.Flush(), nostrlikes.ErrCachePersist)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)

	// and it still loads
	reloaded := &Backend{Path: path}
	require.NoError(t, reloaded.Init())
	require.Equal(t, 1, reloaded.Len())
}

func TestFailedRenameLeavesTargetAlone(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	b := &Backend{Path: path}
	require.NoError(t, b.Init())
	require.NoError(t, b.SaveEvent(ctx, storetest.Events(1)[0]))

	// a non-empty directory can't be replaced by a file, whoever runs this
	require.NoError(t, os.Mkdir(path, 0755))
	keep := filepath.Join(path, "keep")
	require.NoError(t, os.WriteFile(keep, []byte("previous"), 0644))

	require.ErrorIs(t, b.Flush(), nostrlikes.ErrCachePersist)

	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	require.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
	require.Equal(t, FileName, entries[0].Name())
	require.True(t, entries[0].IsDir())
}

func TestNoTemporaryFilesLeft(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	b := &Backend{Path: path}
	require.NoError(t, b.Init())
	for _, evt := range storetest.Events(4) {
		require.NoError(t, b.SaveEvent(ctx, evt))
		require.NoError(t, b.Flush())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, FileName, entries[0].Name())
}
