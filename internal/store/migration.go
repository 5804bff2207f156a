// Package store persists generated palettes in a durable, id-stable index.
package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// migrateRecords resolves wire records into the current schema. Records
// without an id are assigned the next available ids in file order; records
// that already carry an id keep it and keep their stored colour-vision
// verdict. Colour strings are canonicalised to uppercase hex. Returns the
// resolved records sorted by id, the repaired next-id counter and whether
// anything changed relative to what was read.
func (s *Store) migrateRecords(raw []recordJSON, storedNextID int) ([]Record, int, bool, error) {
	seen := make(map[int]bool, len(raw))
	maxID := 0
	for _, r := range raw {
		if r.ID == nil {
			continue
		}
		id := *r.ID
		if id < 1 {
			return nil, 0, false, fmt.Errorf("%w: invalid record id %d", ErrIndexCorrupt, id)
		}
		if seen[id] {
			return nil, 0, false, fmt.Errorf("%w: duplicate record id %d", ErrIndexCorrupt, id)
		}
		seen[id] = true
		if id > maxID {
			maxID = id
		}
	}

	nextID := max(storedNextID, maxID+1, 1)
	dirty := nextID != storedNextID

	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		rec, changed, err := s.resolveRecord(r, &nextID)
		if err != nil {
			return nil, 0, false, err
		}
		if changed {
			dirty = true
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nextID, dirty, nil
}

// resolveRecord converts one wire record, drawing a fresh id from nextID
// when the record has none. Records gaining an id get their colour-vision
// verdict computed, their creation time stamped and their source method
// defaulted, since none of those were recorded by the layouts that predate
// ids.
func (s *Store) resolveRecord(r recordJSON, nextID *int) (Record, bool, error) {
	changed := false

	artist, album := r.Artist, r.Album
	if artist == "" && album == "" && r.Name != "" {
		artist, album = splitLegacyName(r.Name)
		changed = true
	}

	hexes := r.Colors
	if len(hexes) == 0 && len(r.Hexcodes) > 0 {
		hexes = r.Hexcodes
		changed = true
	}
	if len(hexes) == 0 {
		return Record{}, false, fmt.Errorf("%w: record %q/%q has no colours", ErrIndexCorrupt, artist, album)
	}
	colors, parsed, err := canonicalColors(hexes)
	if err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	for i := range colors {
		if colors[i] != hexes[i] {
			changed = true
			break
		}
	}

	rec := Record{
		Artist:       artist,
		Album:        album,
		Colors:       colors,
		CreatedAt:    r.CreatedAt,
		SourceMethod: r.SourceMethod,
	}

	if r.ID != nil {
		rec.ID = *r.ID
		if r.Friendly != nil {
			rec.Friendly = *r.Friendly
		} else {
			rec.Friendly = s.eval.Evaluate(parsed).Friendly
			changed = true
		}
		return rec, changed, nil
	}

	rec.ID = *nextID
	*nextID++
	rec.Friendly = s.eval.Evaluate(parsed).Friendly
	if rec.SourceMethod == "" {
		rec.SourceMethod = SourceLegacy
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return rec, true, nil
}

// splitLegacyName splits the "artist - album" display name the oldest
// records were keyed by.
func splitLegacyName(name string) (string, string) {
	if artist, album, ok := strings.Cut(name, " - "); ok {
		return artist, album
	}
	return name, ""
}
