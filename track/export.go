/*
export.go - Textual backup format for the jobs+shifts data set

A single indented JSON document, versioned so older backups keep
importing. Import replaces the full in-memory store; all dependent
computations are recomputed from scratch because nothing in the engine
caches.
*/
package track

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ExportVersion is written into every document and checked on import.
const ExportVersion = 1

type ExportDocument struct {
	Version    int         `json:"version"`
	ExportedAt time.Time   `json:"exportedAt"`
	Jobs       []Job       `json:"jobs"`
	Shifts     []WorkShift `json:"shifts"`
}

// WriteExport serializes the jobs+shifts data set to w.
func WriteExport(w io.Writer, jobs []Job, shifts []WorkShift, now time.Time) error {
	doc := ExportDocument{
		Version:    ExportVersion,
		ExportedAt: now.UTC(),
		Jobs:       jobs,
		Shifts:     shifts,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadExport parses and sanity-checks an export document. Structural
// problems come back as ErrBadExport so callers can reject the import
// without touching their state.
func ReadExport(r io.Reader) (ExportDocument, error) {
	var doc ExportDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ExportDocument{}, fmt.Errorf("%w: %v", ErrBadExport, err)
	}
	if doc.Version < 1 || doc.Version > ExportVersion {
		return ExportDocument{}, fmt.Errorf("%w: unsupported version %d", ErrBadExport, doc.Version)
	}

	index := NewShiftIndex(doc.Shifts)
	for _, s := range doc.Shifts {
		if s.ID == "" {
			return ExportDocument{}, fmt.Errorf("%w: shift without id", ErrBadExport)
		}
		// Parent links must resolve inside the document; job links may
		// dangle (they degrade to zero-rate shifts, same as live data).
		if s.ParentID != nil {
			if _, ok := index[*s.ParentID]; !ok {
				return ExportDocument{}, fmt.Errorf("%w: shift %s references missing parent %s", ErrBadExport, s.ID, *s.ParentID)
			}
		}
	}
	return doc, nil
}
