package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuft/covbot/src/record"
	"github.com/yuft/covbot/src/types"
)

func TestGetCreatesZeroedRankOnFirstUse(t *testing.T) {
	ctx := context.Background()
	l := record.NewMemoryLog()
	store := NewStore(l)

	r, err := store.Get(ctx, types.Mention(7))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Proposed)
	assert.Equal(t, 0, r.Participated)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 1, l.Len(), "first Get persists the zeroed rank")
}

func TestGetTwiceReturnsIndependentSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewStore(record.NewMemoryLog())

	first, err := store.Get(ctx, types.Mention(7))
	require.NoError(t, err)
	second, err := store.Get(ctx, types.Mention(7))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the same live entry backs both")
	first.Proposed++
	assert.Equal(t, 0, second.Proposed, "an unsaved mutation is invisible to the other snapshot")

	// Persist and a fresh Get sees the increment.
	require.NoError(t, store.Save(ctx, first))
	third, err := store.Get(ctx, types.Mention(7))
	require.NoError(t, err)
	assert.Equal(t, 1, third.Proposed)
	assert.Equal(t, 0, third.Participated)
}

func TestNegativeCountersSurvive(t *testing.T) {
	ctx := context.Background()
	store := NewStore(record.NewMemoryLog())

	r, err := store.Get(ctx, types.Mention(3))
	require.NoError(t, err)
	r.Proposed = -2
	r.Participated = -1
	require.NoError(t, store.Save(ctx, r))

	got, err := store.Get(ctx, types.Mention(3))
	require.NoError(t, err)
	assert.Equal(t, -2, got.Proposed)
	assert.Equal(t, -1, got.Participated)
}

func TestMalformedEntryIsCleanedUpOnRead(t *testing.T) {
	ctx := context.Background()
	l := record.NewMemoryLog()
	store := NewStore(l)

	_, err := l.Append(ctx, "<@1> not-a-number 0")
	require.NoError(t, err)
	_, err = l.Append(ctx, "too few")
	require.NoError(t, err)

	all, err := store.FetchAll(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 0, l.Len())
}

func TestSortByScoreAndPosition(t *testing.T) {
	ranks := []*Rank{
		{Owner: 1, Proposed: 1, Participated: 0},  // 1.5
		{Owner: 2, Proposed: 0, Participated: 4},  // 4
		{Owner: 3, Proposed: 2, Participated: 1},  // 4
		{Owner: 4, Proposed: -1, Participated: 0}, // -1.5
	}

	SortByScore(ranks)

	assert.Equal(t, types.Mention(2), ranks[0].Owner, "equal scores keep their original order")
	assert.Equal(t, types.Mention(3), ranks[1].Owner)
	assert.Equal(t, types.Mention(1), ranks[2].Owner)
	assert.Equal(t, types.Mention(4), ranks[3].Owner)

	assert.Equal(t, 1, Position(ranks, 2))
	assert.Equal(t, 4, Position(ranks, 4))
	assert.Equal(t, 5, Position(ranks, 99), "absent owners rank after everyone")
}
