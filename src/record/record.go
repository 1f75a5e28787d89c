// Package record treats an ordered message log as a mutable record store.
// Records serialize to delimited text lines, one per log entry; the entry id
// assigned by the log at append time is the record's identity for its whole
// life. Reads garbage-collect entries that no longer decode.
package record

import (
	"context"
	"errors"
)

var (
	// ErrNotFound reports a lookup miss. It is the only read failure
	// callers are expected to handle.
	ErrNotFound = errors.New("record not found")

	// ErrMalformed classifies an entry that does not decode: wrong field
	// count or an unparsable field.
	ErrMalformed = errors.New("malformed record")

	// ErrExpired classifies an entry whose useful life is over, such as a
	// carpool already departed.
	ErrExpired = errors.New("record expired")

	// ErrOrphaned classifies an entry whose source record no longer
	// resolves.
	ErrOrphaned = errors.New("orphaned record")
)

// Entry is one raw message in a backing log.
type Entry struct {
	ID      string
	Content string
}

// Log is the full transport contract the store needs: an ordered,
// externally visible message sequence with stable decimal ids. A Discord
// channel satisfies it, as does anything append-shaped.
type Log interface {
	// Append stores content as a new entry and returns its assigned id.
	Append(ctx context.Context, content string) (string, error)
	// Edit overwrites the content of an existing entry in place.
	Edit(ctx context.Context, id, content string) error
	// Delete removes an entry.
	Delete(ctx context.Context, id string) error
	// History returns entries newest first, at most limit of them when
	// limit is positive.
	History(ctx context.Context, limit int) ([]Entry, error)
}
