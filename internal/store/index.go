// Package store persists generated palettes in a durable, id-stable index.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// indexVersion is the current schema version of the index file.
const indexVersion = 1

// Source methods recorded against saved palettes.
const (
	SourceOptimal  = "optimal"
	SourceFixed    = "fixed"
	SourceDistinct = "distinct"
	SourceLegacy   = "legacy"
)

// Record is a stored palette. The id is allocated by the store on first
// save and never reused, even after the record is deleted.
type Record struct {
	ID           int       `json:"id"`
	Artist       string    `json:"artist"`
	Album        string    `json:"album"`
	Colors       []string  `json:"colors"`
	Friendly     bool      `json:"is_colorblind_friendly"`
	CreatedAt    time.Time `json:"created_at"`
	SourceMethod string    `json:"source_method"`
}

// index is the persisted state of the store: a schema version, the next id
// to allocate and the records themselves.
type index struct {
	Version  int      `json:"version"`
	NextID   int      `json:"next_id"`
	Palettes []Record `json:"palettes"`
}

// recordJSON is the tolerant wire form of a Record. The id is a pointer so
// records written before identifiers existed can be told apart from records
// with an explicit id, and fields from the oldest index layout (name,
// hexcodes) are accepted alongside the current ones. Unknown fields are
// ignored.
type recordJSON struct {
	ID           *int      `json:"id"`
	Artist       string    `json:"artist"`
	Album        string    `json:"album"`
	Name         string    `json:"name"`
	Colors       []string  `json:"colors"`
	Hexcodes     []string  `json:"hexcodes"`
	Friendly     *bool     `json:"is_colorblind_friendly"`
	CreatedAt    time.Time `json:"created_at"`
	SourceMethod string    `json:"source_method"`
}

// parseIndexData decodes the raw index file into wire records. It accepts
// two layouts: the current versioned envelope, and the oldest layout where
// the file is a bare JSON array of records. Returns the wire records, the
// stored next-id counter (zero when absent) and whether the file used the
// bare-array layout.
func parseIndexData(data []byte) ([]recordJSON, int, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, 0, false, nil
	}

	if trimmed[0] == '[' {
		var records []recordJSON
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, 0, false, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
		}
		return records, 0, true, nil
	}

	var envelope struct {
		Version  *int         `json:"version"`
		NextID   int          `json:"next_id"`
		Palettes []recordJSON `json:"palettes"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, 0, false, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	if envelope.Version == nil {
		return nil, 0, false, fmt.Errorf("%w: missing version", ErrIndexCorrupt)
	}
	if *envelope.Version < 1 || *envelope.Version > indexVersion {
		return nil, 0, false, fmt.Errorf("%w: unsupported version %d", ErrIndexCorrupt, *envelope.Version)
	}
	return envelope.Palettes, envelope.NextID, false, nil
}
