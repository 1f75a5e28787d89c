package record

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// classified reports whether err is one of the read classifications that
// trigger cleanup instead of surfacing to the caller.
func classified(err error) bool {
	return errors.Is(err, ErrMalformed) || errors.Is(err, ErrExpired) || errors.Is(err, ErrOrphaned)
}

// Store reads and writes one kind of record over a Log. Encoding is a pure
// function of the record; decoding classifies an entry as a record or as one
// of ErrMalformed, ErrExpired, ErrOrphaned. Classified entries met during a
// read are deleted from the log and never surfaced, so corrupt or stale
// state self-heals by disappearing.
type Store[R any] struct {
	log    Log
	encode func(R) string
	decode func(ctx context.Context, e Entry) (R, error)
}

func NewStore[R any](l Log, encode func(R) string, decode func(ctx context.Context, e Entry) (R, error)) *Store[R] {
	return &Store[R]{log: l, encode: encode, decode: decode}
}

// Append serializes rec into a new log entry and returns its assigned id.
func (s *Store[R]) Append(ctx context.Context, rec R) (string, error) {
	id, err := s.log.Append(ctx, s.encode(rec))
	if err != nil {
		return "", fmt.Errorf("append record: %w", err)
	}
	return id, nil
}

// FetchAll decodes the log newest first, at most limit entries when limit is
// positive. Classified entries are cleaned up along the way.
func (s *Store[R]) FetchAll(ctx context.Context, limit int) ([]R, error) {
	entries, err := s.log.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	var records []R
	for _, e := range entries {
		rec, err := s.decode(ctx, e)
		if err != nil {
			s.cleanup(ctx, e, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// FetchByID returns the newest record whose log id ends with shortID. Only
// the matching entry is decoded; a classified match is cleaned up and
// reported as ErrNotFound, the same as exhausting the log.
func (s *Store[R]) FetchByID(ctx context.Context, shortID string) (R, error) {
	var zero R
	entries, err := s.log.History(ctx, 0)
	if err != nil {
		return zero, fmt.Errorf("fetch record %s: %w", shortID, err)
	}

	for _, e := range entries {
		if !strings.HasSuffix(e.ID, shortID) {
			continue
		}
		rec, err := s.decode(ctx, e)
		if err != nil {
			s.cleanup(ctx, e, err)
			return zero, ErrNotFound
		}
		return rec, nil
	}
	return zero, ErrNotFound
}

// Find returns the newest record matching the predicate, decoding and
// cleaning up along the way.
func (s *Store[R]) Find(ctx context.Context, match func(R) bool) (R, error) {
	var zero R
	entries, err := s.log.History(ctx, 0)
	if err != nil {
		return zero, fmt.Errorf("find record: %w", err)
	}

	for _, e := range entries {
		rec, err := s.decode(ctx, e)
		if err != nil {
			s.cleanup(ctx, e, err)
			continue
		}
		if match(rec) {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

// Update re-serializes rec over its existing entry. The id never changes.
func (s *Store[R]) Update(ctx context.Context, id string, rec R) error {
	if err := s.log.Edit(ctx, id, s.encode(rec)); err != nil {
		return fmt.Errorf("update record %s: %w", id, err)
	}
	return nil
}

// Remove deletes the backing entry.
func (s *Store[R]) Remove(ctx context.Context, id string) error {
	if err := s.log.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove record %s: %w", id, err)
	}
	return nil
}

func (s *Store[R]) cleanup(ctx context.Context, e Entry, cause error) {
	if !classified(cause) {
		log.Printf("record: entry %s failed to decode outside classification: %v", e.ID, cause)
	}
	if err := s.log.Delete(ctx, e.ID); err != nil {
		log.Printf("record: failed to clean up entry %s: %v", e.ID, err)
	}
}
