package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.json")
	return New(path, Options{}), path
}

func saveTestRecord(t *testing.T, s *Store, artist, album string, colors []string) int {
	t.Helper()
	id, err := s.Save(context.Background(), Record{
		Artist:       artist,
		Album:        album,
		Colors:       colors,
		SourceMethod: SourceOptimal,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return id
}

func TestStoreSaveAllocatesSequentialIDs(t *testing.T) {
	s, _ := newTestStore(t)

	for want := 1; want <= 3; want++ {
		id := saveTestRecord(t, s, "Artist", "Album", []string{"#FF0000", "#0000FF"})
		if id != want {
			t.Errorf("Save() id = %d, want %d", id, want)
		}
	}
}

func TestStoreSaveValidation(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{
			name:   "existing id",
			record: Record{ID: 7, Colors: []string{"#FF0000"}},
		},
		{
			name:   "no colours",
			record: Record{Artist: "Artist", Album: "Album"},
		},
		{
			name:   "invalid hex",
			record: Record{Colors: []string{"#GG0000"}},
		},
		{
			name:   "short hex",
			record: Record{Colors: []string{"#F00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			if _, err := s.Save(context.Background(), tt.record); err == nil {
				t.Errorf("Save() expected error for %s", tt.name)
			}
		})
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.Save(context.Background(), Record{
		Artist:       "Boards of Canada",
		Album:        "Geogaddi",
		Colors:       []string{"#ff0000", "#0000FF"},
		Friendly:     true,
		CreatedAt:    created,
		SourceMethod: SourceFixed,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rec, err := s.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("Load(%d) error = %v", id, err)
	}
	if rec.Artist != "Boards of Canada" || rec.Album != "Geogaddi" {
		t.Errorf("Load() = %q/%q, want Boards of Canada/Geogaddi", rec.Artist, rec.Album)
	}
	if len(rec.Colors) != 2 || rec.Colors[0] != "#FF0000" || rec.Colors[1] != "#0000FF" {
		t.Errorf("Load() colors = %v, want canonical uppercase hex", rec.Colors)
	}
	if !rec.CreatedAt.Equal(created) {
		t.Errorf("Load() created_at = %v, want %v", rec.CreatedAt, created)
	}
	if rec.SourceMethod != SourceFixed {
		t.Errorf("Load() source_method = %q, want %q", rec.SourceMethod, SourceFixed)
	}
}

func TestStoreLoadNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	saveTestRecord(t, s, "Artist", "Album", []string{"#FF0000"})

	if _, err := s.Load(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(42) error = %v, want ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		saveTestRecord(t, s, "Artist", "Album", []string{"#FF0000"})
	}

	if err := s.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete(3) error = %v", err)
	}

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 || records[0].ID != 1 || records[1].ID != 2 {
		t.Errorf("List() after delete = %v, want ids [1 2]", recordIDs(records))
	}

	if _, err := s.Load(context.Background(), 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(3) after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(context.Background(), 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(3) twice error = %v, want ErrNotFound", err)
	}
}

func TestStoreDeletedIDNeverReused(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		saveTestRecord(t, s, "Artist", "Album", []string{"#FF0000"})
	}
	if err := s.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete(3) error = %v", err)
	}

	if id := saveTestRecord(t, s, "Artist", "Album", []string{"#00FF00"}); id != 4 {
		t.Errorf("Save() after delete id = %d, want 4", id)
	}
}

func TestStoreEmptyIndex(t *testing.T) {
	s, path := newTestStore(t)

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() on missing index error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List() on missing index = %v, want empty", records)
	}

	// An empty file is treated the same as a missing one.
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(context.Background()); err != nil {
		t.Errorf("List() on empty index error = %v", err)
	}
}

func TestStoreCorruptIndexLeftIntact(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "truncated json", data: `{"version": 1, "next_id": 2, "palettes": [{"id"`},
		{name: "missing version", data: `{"next_id": 2, "palettes": []}`},
		{name: "future version", data: `{"version": 99, "next_id": 1, "palettes": []}`},
		{name: "duplicate ids", data: `{"version": 1, "next_id": 3, "palettes": [{"id": 1, "colors": ["#FF0000"]}, {"id": 1, "colors": ["#0000FF"]}]}`},
		{name: "invalid id", data: `{"version": 1, "next_id": 1, "palettes": [{"id": -4, "colors": ["#FF0000"]}]}`},
		{name: "invalid colour", data: `{"version": 1, "next_id": 2, "palettes": [{"id": 1, "colors": ["red"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := newTestStore(t)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}

			if _, err := s.List(context.Background()); !errors.Is(err, ErrIndexCorrupt) {
				t.Errorf("List() error = %v, want ErrIndexCorrupt", err)
			}
			if _, err := s.Save(context.Background(), Record{Colors: []string{"#FF0000"}}); !errors.Is(err, ErrIndexCorrupt) {
				t.Errorf("Save() error = %v, want ErrIndexCorrupt", err)
			}

			// The corrupt file must be left byte for byte as it was.
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.data {
				t.Errorf("corrupt index was modified: %q", data)
			}
		})
	}
}

func TestStoreSurvivesInterruptedWrite(t *testing.T) {
	s, path := newTestStore(t)
	saveTestRecord(t, s, "Artist", "Album", []string{"#FF0000"})

	// A crash between writing the temporary file and renaming it leaves the
	// temporary file behind and the previous index untouched.
	tmp := filepath.Join(filepath.Dir(path), "index-12345.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{"version": 1, "next_id": 9, "palettes": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != 1 {
		t.Errorf("List() = %v, want the record saved before the crash", recordIDs(records))
	}

	if id := saveTestRecord(t, s, "Artist", "Album", []string{"#0000FF"}); id != 2 {
		t.Errorf("Save() after crash id = %d, want 2", id)
	}
}

func TestStoreToleratesUnknownFields(t *testing.T) {
	s, path := newTestStore(t)
	data := `{"version": 1, "next_id": 2, "future_field": true, "palettes": [
		{"id": 1, "artist": "Artist", "album": "Album", "colors": ["#FF0000"],
		 "is_colorblind_friendly": true, "created_at": "2026-01-02T03:04:05Z",
		 "source_method": "optimal", "rating": 5}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != 1 || records[0].Artist != "Artist" {
		t.Errorf("List() = %v, want the one stored record", records)
	}
}

func TestStoreLockBlocksSecondHolder(t *testing.T) {
	s, path := newTestStore(t)
	saveTestRecord(t, s, "Artist", "Album", []string{"#FF0000"})

	holder := New(path, Options{LockRetryDelay: 5 * time.Millisecond})
	err := holder.withLock(context.Background(), func() error {
		// While the lock is held another store must give up when its
		// context expires, not read the index.
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		blocked := New(path, Options{LockRetryDelay: 5 * time.Millisecond})
		if _, err := blocked.List(ctx); err == nil {
			return errors.New("List() succeeded while the lock was held")
		}
		return nil
	})
	if err != nil {
		t.Errorf("withLock() error = %v", err)
	}

	// The lock is free again once withLock returns.
	if _, err := s.List(context.Background()); err != nil {
		t.Errorf("List() after lock release error = %v", err)
	}
}

func recordIDs(records []Record) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
