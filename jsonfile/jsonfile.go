// Package jsonfile keeps the event cache as a single JSON object mapping event ids to events.
//
// The whole file is read on Init and rewritten on Flush. Writes go to a temporary file
// next to the target which is then renamed over it, so a failed Flush leaves the previous
// cache untouched.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bouzuya/nostrlikes"
	"github.com/nbd-wtf/go-nostr"
)

// FileName is the name of the cache file inside the cache directory.
const FileName = "events.json"

var _ nostrlikes.Store = (*Backend)(nil)

type Backend struct {
	Path string

	events map[string]*nostr.Event
}

func (b *Backend) Init() error {
	b.events = make(map[string]*nostr.Event)

	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCacheCorrupt, err)
	}

	if err := json.Unmarshal(data, &b.events); err != nil {
		return fmt.Errorf("%w: '%s': %w", nostrlikes.ErrCacheCorrupt, b.Path, err)
	}
	if b.events == nil {
		// the file said "null"
		b.events = make(map[string]*nostr.Event)
	}
	for id, evt := range b.events {
		if evt == nil {
			return fmt.Errorf("%w: '%s': null entry for %s", nostrlikes.ErrCacheCorrupt, b.Path, id)
		}
	}

	return nil
}

func (b *Backend) Close() {}

func (b *Backend) GetEvent(ctx context.Context, id string) (*nostr.Event, error) {
	if evt, ok := b.events[id]; ok {
		return evt, nil
	}
	return nil, nostrlikes.ErrNotFound
}

func (b *Backend) SaveEvent(ctx context.Context, evt *nostr.Event) error {
	if _, ok := b.events[evt.ID]; ok {
		return nostrlikes.ErrDupEvent
	}
	b.events[evt.ID] = evt
	return nil
}

// Len is the number of cached events.
func (b *Backend) Len() int { return len(b.events) }

// Flush always rewrites the file, even when nothing was added, so that a run leaves
// a cache file behind.
func (b *Backend) Flush() error {
	data, err := json.Marshal(b.events)
	if err != nil {
		return fmt.Errorf("%w: failed to encode: %w", nostrlikes.ErrCachePersist, err)
	}

	if err := writeFile(b.Path, data); err != nil {
		return fmt.Errorf("%w: %w", nostrlikes.ErrCachePersist, err)
	}

	return nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	// no-op once the rename went through
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
