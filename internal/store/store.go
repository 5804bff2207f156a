// Package store persists generated palettes in a durable, id-stable index.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/albumtint/internal/colour"
)

// Options configures a Store. The zero value is usable.
type Options struct {
	// Logger receives store diagnostics. Defaults to a no-op logger.
	Logger hclog.Logger

	// Evaluator computes the colour-vision verdict for records that predate
	// it. Defaults to an evaluator with the default configuration.
	Evaluator *colour.Evaluator

	// LockRetryDelay is how often the store re-attempts the index lock while
	// another process holds it. Defaults to 50ms.
	LockRetryDelay time.Duration
}

// Store persists palette records in a single JSON index file shared across
// process invocations. Every operation, reads included, runs under an
// exclusive advisory lock on a sidecar lock file, and every mutation
// replaces the index with an atomic rename so a crash can never leave a
// half-written index behind.
type Store struct {
	path       string
	lock       *flock.Flock
	logger     hclog.Logger
	eval       *colour.Evaluator
	retryDelay time.Duration
}

// New creates a Store over the index file at path. The file and its
// directory are created on the first save.
func New(path string, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	eval := opts.Evaluator
	if eval == nil {
		eval = colour.NewEvaluator(colour.DefaultEvaluatorConfig())
	}
	retry := opts.LockRetryDelay
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	return &Store{
		path:       path,
		lock:       flock.New(path + ".lock"),
		logger:     logger.Named("store"),
		eval:       eval,
		retryDelay: retry,
	}
}

// DefaultIndexPath returns the default index file location under the
// user's home directory.
func DefaultIndexPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".albumtint", "palettes", "index.json")
	}
	return filepath.Join(home, ".albumtint", "palettes", "index.json")
}

// Save persists a new record and returns the id allocated to it. The record
// must not carry an id already; its colours must be valid hex strings.
func (s *Store) Save(ctx context.Context, rec Record) (int, error) {
	if rec.ID != 0 {
		return 0, fmt.Errorf("record already has id %d", rec.ID)
	}
	if len(rec.Colors) == 0 {
		return 0, errors.New("record must contain at least one colour")
	}
	colors, _, err := canonicalColors(rec.Colors)
	if err != nil {
		return 0, fmt.Errorf("save palette: %w", err)
	}
	rec.Colors = colors
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var id int
	err = s.withLock(ctx, func() error {
		idx, err := s.loadIndex()
		if err != nil {
			return err
		}
		rec.ID = idx.NextID
		idx.NextID++
		idx.Palettes = append(idx.Palettes, rec)
		if err := s.writeIndex(idx); err != nil {
			return err
		}
		id = rec.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("saved palette", "id", id, "artist", rec.Artist, "album", rec.Album)
	return id, nil
}

// Load returns the record with the given id, or ErrNotFound.
func (s *Store) Load(ctx context.Context, id int) (Record, error) {
	var rec Record
	err := s.withLock(ctx, func() error {
		idx, err := s.loadIndex()
		if err != nil {
			return err
		}
		for _, r := range idx.Palettes {
			if r.ID == id {
				rec = r
				return nil
			}
		}
		return fmt.Errorf("load palette %d: %w", id, ErrNotFound)
	})
	return rec, err
}

// List returns every record, sorted by id ascending.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	var records []Record
	err := s.withLock(ctx, func() error {
		idx, err := s.loadIndex()
		if err != nil {
			return err
		}
		records = idx.Palettes
		return nil
	})
	return records, err
}

// Delete removes the record with the given id, or returns ErrNotFound. The
// id is never reallocated to a later save.
func (s *Store) Delete(ctx context.Context, id int) error {
	err := s.withLock(ctx, func() error {
		idx, err := s.loadIndex()
		if err != nil {
			return err
		}
		for i, r := range idx.Palettes {
			if r.ID == id {
				idx.Palettes = append(idx.Palettes[:i], idx.Palettes[i+1:]...)
				return s.writeIndex(idx)
			}
		}
		return fmt.Errorf("delete palette %d: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}
	s.logger.Debug("deleted palette", "id", id)
	return nil
}

// withLock runs fn while holding the exclusive index lock. The lock lives
// on a sidecar file so the atomic rename never replaces the locked inode.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	locked, err := s.lock.TryLockContext(ctx, s.retryDelay)
	if err != nil {
		return fmt.Errorf("lock index: %w", err)
	}
	if !locked {
		return errors.New("lock index: not acquired")
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release index lock", "error", err)
		}
	}()
	return fn()
}

// loadIndex reads and resolves the index. Call only while holding the lock.
// A missing or empty file yields a fresh index. When migration changed
// anything the repaired index is persisted before this returns, so older
// layouts are rewritten exactly once.
func (s *Store) loadIndex() (*index, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &index{Version: indexVersion, NextID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	raw, storedNextID, bareArray, err := parseIndexData(data)
	if err != nil {
		return nil, err
	}
	records, nextID, dirty, err := s.migrateRecords(raw, storedNextID)
	if err != nil {
		return nil, err
	}
	idx := &index{Version: indexVersion, NextID: nextID, Palettes: records}
	if bareArray || dirty {
		if err := s.writeIndex(idx); err != nil {
			return nil, fmt.Errorf("rewrite migrated index: %w", err)
		}
		s.logger.Info("migrated palette index", "records", len(records))
	}
	return idx, nil
}

// writeIndex atomically replaces the index file. The new contents go to a
// temporary file in the same directory, are synced, and the temporary file
// is renamed over the index. The previous index stays intact if anything
// fails before the rename.
func (s *Store) writeIndex(idx *index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "index-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temporary index: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temporary index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temporary index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temporary index: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// canonicalColors parses hex strings and returns them in canonical
// uppercase form alongside the parsed colours.
func canonicalColors(hexes []string) ([]string, []colour.RGB, error) {
	colors := make([]string, len(hexes))
	parsed := make([]colour.RGB, len(hexes))
	for i, h := range hexes {
		c, err := colour.ParseHex(h)
		if err != nil {
			return nil, nil, err
		}
		parsed[i] = c
		colors[i] = c.Hex()
	}
	return colors, parsed, nil
}
