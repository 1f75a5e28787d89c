// Package reminder persists timed notifications in a backing message log
// and delivers them through a poll/arm scheduler. Each reminder references
// a source record of some other kind through a caller-supplied codec; a
// reminder whose source no longer resolves is orphaned and deleted on read
// without firing.
package reminder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yuft/covbot/src/record"
	"github.com/yuft/covbot/src/taskpool"
	"github.com/yuft/covbot/src/types"
)

const wireFields = 5

// DefaultPollInterval is the scheduler horizon: reminders due within one
// interval of a poll tick get their own precise timer.
const DefaultPollInterval = 5 * time.Minute

type Reminder[S any] struct {
	ID       string
	Event    types.Timestamp
	Remind   types.Timestamp
	User     types.Mention
	Fallback types.Channel
	Source   S
}

// SourceCodec resolves reminders to their source records. Encode must yield
// a stable key; Resolve reports a miss with an error, which classifies the
// reminder as orphaned.
type SourceCodec[S any] struct {
	Encode  func(S) string
	Resolve func(ctx context.Context, key string) (S, error)
}

// Store owns both the log-backed records and the in-memory pending cache of
// reminders that have not been armed yet. The cache lives as long as the
// process does.
type Store[S any] struct {
	records *record.Store[*Reminder[S]]
	codec   SourceCodec[S]
	pool    *taskpool.Pool
	poll    time.Duration
	now     func() time.Time

	mu      sync.Mutex
	pending []*Reminder[S]
}

func NewStore[S any](l record.Log, codec SourceCodec[S], pool *taskpool.Pool, poll time.Duration) *Store[S] {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	s := &Store[S]{codec: codec, pool: pool, poll: poll, now: time.Now}
	s.records = record.NewStore(l, s.encode, s.decode)
	return s
}

func (s *Store[S]) encode(r *Reminder[S]) string {
	return record.Encode(
		r.Event.String(),
		r.Remind.String(),
		r.User.String(),
		r.Fallback.String(),
		s.codec.Encode(r.Source),
	)
}

func (s *Store[S]) decode(ctx context.Context, e record.Entry) (*Reminder[S], error) {
	fields, err := record.Decode(e.Content, wireFields)
	if err != nil {
		return nil, err
	}

	event, err := types.ParseTimestamp(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: event date: %v", record.ErrMalformed, err)
	}
	remind, err := types.ParseTimestamp(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: remind date: %v", record.ErrMalformed, err)
	}
	user, err := types.ParseMention(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: user: %v", record.ErrMalformed, err)
	}
	fallback, err := types.ParseChannel(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: fallback channel: %v", record.ErrMalformed, err)
	}

	source, err := s.codec.Resolve(ctx, fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: source %q: %v", record.ErrOrphaned, fields[4], err)
	}

	return &Reminder[S]{
		ID:       e.ID,
		Event:    event,
		Remind:   remind,
		User:     user,
		Fallback: fallback,
		Source:   source,
	}, nil
}

// Create persists a reminder and adds it to the pending cache.
func (s *Store[S]) Create(ctx context.Context, event, remind types.Timestamp, user types.Mention, fallback types.Channel, source S) (*Reminder[S], error) {
	r := &Reminder[S]{
		Event:    event,
		Remind:   remind,
		User:     user,
		Fallback: fallback,
		Source:   source,
	}

	id, err := s.records.Append(ctx, r)
	if err != nil {
		return nil, err
	}
	r.ID = id

	s.mu.Lock()
	s.pending = append(s.pending, r)
	s.mu.Unlock()
	return r, nil
}

// FetchAll scans the log newest first, garbage-collecting orphans and
// malformed entries, and replaces the pending cache with the survivors.
// Command-layer scans double as cache refreshes.
func (s *Store[S]) FetchAll(ctx context.Context, limit int) ([]*Reminder[S], error) {
	reminders, err := s.records.FetchAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.pending = append([]*Reminder[S](nil), reminders...)
	s.mu.Unlock()
	return reminders, nil
}

// FetchByID resolves a reminder by a decimal suffix of its backing id.
func (s *Store[S]) FetchByID(ctx context.Context, shortID string) (*Reminder[S], error) {
	return s.records.FetchByID(ctx, shortID)
}

// Delete cancels a reminder: it leaves the pending cache, if still there,
// and its backing entry is removed.
func (s *Store[S]) Delete(ctx context.Context, r *Reminder[S]) error {
	s.unpend(r.ID)
	return s.records.Remove(ctx, r.ID)
}

// Pending reports how many reminders are cached and not yet armed.
func (s *Store[S]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Store[S]) unpend(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.pending {
		if r.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Run loads every live reminder into the pending cache, then polls it until
// ctx is cancelled. Reminders due within one poll interval are armed: taken
// out of the cache and handed to the task pool with a precise delay. Firing
// invokes onFire and then deletes the record, so a reminder armed but
// unfired at process death reloads on the next start rather than being
// lost.
func (s *Store[S]) Run(ctx context.Context, onFire func(context.Context, *Reminder[S])) {
	if _, err := s.FetchAll(ctx, 0); err != nil {
		log.Printf("reminder: initial load failed: %v", err)
	}
	log.Printf("reminder: %d pending loaded", s.Pending())

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		s.armDue(ctx, onFire)

		select {
		case <-ctx.Done():
			log.Printf("reminder: scheduler stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Store[S]) armDue(ctx context.Context, onFire func(context.Context, *Reminder[S])) {
	now := s.now()

	s.mu.Lock()
	var due, rest []*Reminder[S]
	for _, r := range s.pending {
		if r.Remind.Time().Sub(now) < s.poll {
			due = append(due, r)
		} else {
			rest = append(rest, r)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	for _, r := range due {
		r := r
		delay := r.Remind.Time().Sub(now)
		if delay < 0 {
			delay = 0
		}
		s.pool.RunAfter(delay, func() {
			onFire(ctx, r)
			if err := s.records.Remove(ctx, r.ID); err != nil {
				log.Printf("reminder: failed to delete fired reminder %s: %v", r.ID, err)
			}
		})
	}
}
