package nostrlikes

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCacheDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honored on linux")
	}

	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := DefaultCacheDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "net.bouzuya.lab.nostr-likes"), dir)
}
