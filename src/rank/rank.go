// Package rank keeps per-user participation counters in a backing message
// log, one user per entry. Entries are plain space-joined fields; none of
// them carry free text, so the delimiter machinery is not needed here.
package rank

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yuft/covbot/src/record"
	"github.com/yuft/covbot/src/types"
)

type Rank struct {
	ID           string
	Owner        types.Mention
	Proposed     int
	Participated int
}

// Score weighs proposing a carpool over taking one.
func (r *Rank) Score() float64 {
	return float64(r.Proposed)*1.5 + float64(r.Participated)
}

// SortByScore orders ranks best first. The sort is stable so equal scores
// keep their log order.
func SortByScore(ranks []*Rank) {
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].Score() > ranks[j].Score()
	})
}

// Position returns the 1-based leaderboard position of owner within an
// already sorted slice, or len+1 when absent.
func Position(sorted []*Rank, owner types.Mention) int {
	for i, r := range sorted {
		if r.Owner == owner {
			return i + 1
		}
	}
	return len(sorted) + 1
}

type Store struct {
	records *record.Store[*Rank]
}

func NewStore(l record.Log) *Store {
	return &Store{records: record.NewStore(l, encode, decode)}
}

func encode(r *Rank) string {
	return strings.Join([]string{
		r.Owner.String(),
		strconv.Itoa(r.Proposed),
		strconv.Itoa(r.Participated),
	}, " ")
}

func decode(_ context.Context, e record.Entry) (*Rank, error) {
	fields := strings.Split(e.Content, " ")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: %d fields, want 3", record.ErrMalformed, len(fields))
	}

	owner, err := types.ParseMention(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %v", record.ErrMalformed, err)
	}
	proposed, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: proposed: %v", record.ErrMalformed, err)
	}
	participated, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: participated: %v", record.ErrMalformed, err)
	}

	return &Rank{ID: e.ID, Owner: owner, Proposed: proposed, Participated: participated}, nil
}

// Get returns owner's rank, creating and persisting a zeroed one on first
// use. At most one live entry exists per owner.
func (s *Store) Get(ctx context.Context, owner types.Mention) (*Rank, error) {
	r, err := s.records.Find(ctx, func(r *Rank) bool { return r.Owner == owner })
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, record.ErrNotFound) {
		return nil, err
	}

	r = &Rank{Owner: owner}
	id, err := s.records.Append(ctx, r)
	if err != nil {
		return nil, err
	}
	r.ID = id
	return r, nil
}

// FetchAll returns every live rank, newest entry first.
func (s *Store) FetchAll(ctx context.Context, limit int) ([]*Rank, error) {
	return s.records.FetchAll(ctx, limit)
}

// Save rewrites the backing entry with the current counters.
func (s *Store) Save(ctx context.Context, r *Rank) error {
	return s.records.Update(ctx, r.ID, r)
}
