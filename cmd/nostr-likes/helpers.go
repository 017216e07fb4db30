package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bouzuya/nostrlikes"
	"github.com/bouzuya/nostrlikes/badger"
	"github.com/bouzuya/nostrlikes/bolt"
	"github.com/bouzuya/nostrlikes/jsonfile"
	"github.com/bouzuya/nostrlikes/lmdb"
	"github.com/bouzuya/nostrlikes/memory"
	"github.com/bouzuya/nostrlikes/sqlite3"
	"github.com/kr/pretty"
	"github.com/mailru/easyjson"
	"github.com/nbd-wtf/go-nostr"
	"github.com/rs/zerolog"
)

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(level).With().Timestamp().Logger()
}

func openStore(dir string, typ string, logger *zerolog.Logger) (nostrlikes.Store, string, error) {
	if typ == "" {
		typ = detect(dir)
	}

	var db nostrlikes.Store
	switch typ {
	case "json":
		db = &jsonfile.Backend{Path: filepath.Join(dir, jsonfile.FileName)}
	case "badger":
		db = &badger.BadgerBackend{Path: filepath.Join(dir, badger.DirName), Logger: logger}
	case "bolt":
		db = &bolt.BoltBackend{Path: filepath.Join(dir, bolt.FileName)}
	case "lmdb":
		db = &lmdb.LMDBBackend{Path: filepath.Join(dir, lmdb.DirName)}
	case "sqlite":
		db = &sqlite3.SQLite3Backend{DatabaseURL: filepath.Join(dir, sqlite3.FileName)}
	case "memory":
		db = &memory.Store{}
	default:
		return nil, typ, fmt.Errorf("'%s' cache type is not supported", typ)
	}

	if err := db.Init(); err != nil {
		return nil, typ, err
	}
	return db, typ, nil
}

// detect looks at what a previous run left in dir, falling back to "json".
func detect(dir string) string {
	if _, err := os.Stat(filepath.Join(dir, jsonfile.FileName)); err == nil {
		return "json"
	}
	if f, err := os.Stat(filepath.Join(dir, badger.DirName)); err == nil && f.IsDir() {
		return "badger"
	}
	if f, err := os.Stat(filepath.Join(dir, lmdb.DirName)); err == nil && f.IsDir() {
		return "lmdb"
	}
	if _, err := os.Stat(filepath.Join(dir, bolt.FileName)); err == nil {
		return "bolt"
	}
	if f, err := os.Open(filepath.Join(dir, sqlite3.FileName)); err == nil {
		defer f.Close()
		buf := make([]byte, 15)
		f.Read(buf)
		if string(buf) == "SQLite format 3" {
			return "sqlite"
		}
	}
	return "json"
}

func printer(w io.Writer, format string) (func(*nostr.Event) error, error) {
	switch format {
	case "debug":
		return func(evt *nostr.Event) error {
			_, err := pretty.Fprintf(w, "%# v\n", evt)
			return err
		}, nil
	case "json":
		return func(evt *nostr.Event) error {
			b, err := easyjson.Marshal(evt)
			if err != nil {
				return fmt.Errorf("failed to encode event %s: %w", evt.ID, err)
			}
			_, err = fmt.Fprintln(w, string(b))
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unknown format '%s', use 'debug' or 'json'", format)
	}
}
