// Package carpool persists carpool listings in a backing message log, one
// listing per entry. A listing whose departure time has passed is expired:
// any read that meets it deletes the entry and reports not-found.
package carpool

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/yuft/covbot/src/record"
	"github.com/yuft/covbot/src/types"
)

const wireFields = 8

// ShortIDLen is how many trailing digits of the backing id users see.
const ShortIDLen = 8

type Carpool struct {
	ID        string
	Owner     types.Mention
	Date      types.Timestamp
	Departure string
	Arrival   string
	Distance  string
	Duration  string
	Seats     int
	Joiners   []types.Mention
}

// ShortID returns the user-facing suffix of the backing id.
func (c *Carpool) ShortID() string {
	if len(c.ID) <= ShortIDLen {
		return c.ID
	}
	return c.ID[len(c.ID)-ShortIDLen:]
}

// Full reports whether every seat is taken.
func (c *Carpool) Full() bool {
	return len(c.Joiners) >= c.Seats
}

// SeatsLeft never goes below zero even if seats were edited under the
// joiners.
func (c *Carpool) SeatsLeft() int {
	if left := c.Seats - len(c.Joiners); left > 0 {
		return left
	}
	return 0
}

// Joined reports whether user is one of the joiners.
func (c *Carpool) Joined(user types.Mention) bool {
	for _, j := range c.Joiners {
		if j == user {
			return true
		}
	}
	return false
}

// Join appends user to the joiner list, preserving join order.
func (c *Carpool) Join(user types.Mention) {
	c.Joiners = append(c.Joiners, user)
}

// Leave removes user from the joiner list.
func (c *Carpool) Leave(user types.Mention) {
	for i, j := range c.Joiners {
		if j == user {
			c.Joiners = append(c.Joiners[:i], c.Joiners[i+1:]...)
			return
		}
	}
}

type Store struct {
	records *record.Store[*Carpool]
	now     func() time.Time
}

func NewStore(l record.Log) *Store {
	s := &Store{now: time.Now}
	s.records = record.NewStore(l, encode, s.decode)
	return s
}

func encode(c *Carpool) string {
	joiners := make([]string, len(c.Joiners))
	for i, j := range c.Joiners {
		joiners[i] = j.String()
	}
	return record.Encode(
		c.Owner.String(),
		c.Date.String(),
		c.Departure,
		c.Arrival,
		c.Distance,
		c.Duration,
		strconv.Itoa(c.Seats),
		record.EncodeList(joiners),
	)
}

func (s *Store) decode(_ context.Context, e record.Entry) (*Carpool, error) {
	fields, err := record.Decode(e.Content, wireFields)
	if err != nil {
		return nil, err
	}

	owner, err := types.ParseMention(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %v", record.ErrMalformed, err)
	}
	date, err := types.ParseTimestamp(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", record.ErrMalformed, err)
	}
	seats, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("%w: seats: %v", record.ErrMalformed, err)
	}

	var joiners []types.Mention
	for _, raw := range record.DecodeList(fields[7]) {
		joiner, err := types.ParseMention(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: joiner: %v", record.ErrMalformed, err)
		}
		joiners = append(joiners, joiner)
	}

	if !date.Time().After(s.now()) {
		return nil, record.ErrExpired
	}

	return &Carpool{
		ID:        e.ID,
		Owner:     owner,
		Date:      date,
		Departure: fields[2],
		Arrival:   fields[3],
		Distance:  fields[4],
		Duration:  fields[5],
		Seats:     seats,
		Joiners:   joiners,
	}, nil
}

// Create persists a fresh listing with no joiners and returns it with its
// assigned id.
func (s *Store) Create(ctx context.Context, owner types.Mention, date types.Timestamp, departure, arrival, distance, duration string, seats int) (*Carpool, error) {
	c := &Carpool{
		Owner:     owner,
		Date:      date,
		Departure: departure,
		Arrival:   arrival,
		Distance:  distance,
		Duration:  duration,
		Seats:     seats,
	}

	id, err := s.records.Append(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// FetchAll returns live listings newest first, expiring stale ones as a
// side effect.
func (s *Store) FetchAll(ctx context.Context, limit int) ([]*Carpool, error) {
	return s.records.FetchAll(ctx, limit)
}

// FetchByID resolves a listing by a decimal suffix of its backing id.
func (s *Store) FetchByID(ctx context.Context, shortID string) (*Carpool, error) {
	return s.records.FetchByID(ctx, shortID)
}

// Save rewrites the backing entry in place.
func (s *Store) Save(ctx context.Context, c *Carpool) error {
	return s.records.Update(ctx, c.ID, c)
}

// Delete removes the listing and returns its joiners, in join order, so the
// caller can notify them.
func (s *Store) Delete(ctx context.Context, c *Carpool) ([]types.Mention, error) {
	if err := s.records.Remove(ctx, c.ID); err != nil {
		return nil, err
	}
	return c.Joiners, nil
}
