package nostrlikes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultRelayURL = "wss://relay.damus.io"
	DefaultLimit    = 10
	DefaultTimeout  = 10 * time.Second

	// CacheNamespace is the directory name used under the user cache home.
	CacheNamespace = "net.bouzuya.lab.nostr-likes"
	// CacheDirEnv overrides the whole cache directory.
	CacheDirEnv = "NOSTR_LIKES_CACHE_DIR"
)

// DefaultCacheDir is the platform cache home joined with CacheNamespace,
// e.g. ~/.cache/net.bouzuya.lab.nostr-likes on linux.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("can't determine cache directory, set %s: %w", CacheDirEnv, err)
	}
	return filepath.Join(base, CacheNamespace), nil
}
