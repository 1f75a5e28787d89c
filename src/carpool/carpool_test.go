package carpool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuft/covbot/src/record"
	"github.com/yuft/covbot/src/types"
)

func newTestStore(t *testing.T) (*Store, *record.MemoryLog) {
	t.Helper()
	l := record.NewMemoryLog()
	return NewStore(l), l
}

func TestCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	owner := types.Mention(42)
	date := types.At(time.Now().Add(24 * time.Hour))
	created, err := store.Create(ctx, owner, date, "Lyon", "Paris", "5km", "4h30", 3)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Empty(t, got.Joiners)
}

func TestFreeTextCannotBreakTheWireFormat(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	date := types.At(time.Now().Add(time.Hour))
	created, err := store.Create(ctx, types.Mention(1), date, `Lyon `+record.Delimiter+` gare`, "Paris", "5km", "2h", 2)
	require.NoError(t, err)

	got, err := store.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lyon  gare", got.Departure)
}

func TestExpiredCarpoolIsCleanedUpOnRead(t *testing.T) {
	ctx := context.Background()
	store, l := newTestStore(t)

	past := types.At(time.Now().Add(-time.Minute))
	created, err := store.Create(ctx, types.Mention(1), past, "Lyon", "Paris", "5km", "2h", 2)
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())

	all, err := store.FetchAll(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 0, l.Len(), "expired entry must be deleted by the read")

	_, err = store.FetchByID(ctx, created.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestDepartureExactlyNowIsExpired(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	now := time.Now()
	store.now = func() time.Time { return now }

	created, err := store.Create(ctx, types.Mention(1), types.At(now), "Lyon", "Paris", "5km", "2h", 2)
	require.NoError(t, err)

	_, err = store.FetchByID(ctx, created.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestMalformedEntryIsCleanedUpOnRead(t *testing.T) {
	ctx := context.Background()
	store, l := newTestStore(t)

	_, err := l.Append(ctx, "not a carpool at all")
	require.NoError(t, err)

	all, err := store.FetchAll(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 0, l.Len())
}

func TestDeleteReturnsJoinersInJoinOrder(t *testing.T) {
	ctx := context.Background()
	store, l := newTestStore(t)

	date := types.At(time.Now().Add(time.Hour))
	c, err := store.Create(ctx, types.Mention(1), date, "Lyon", "Paris", "5km", "2h", 3)
	require.NoError(t, err)

	c.Join(types.Mention(10))
	c.Join(types.Mention(20))
	require.NoError(t, store.Save(ctx, c))

	got, err := store.FetchByID(ctx, c.ID)
	require.NoError(t, err)

	joiners, err := store.Delete(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, []types.Mention{10, 20}, joiners)
	assert.Equal(t, 0, l.Len())

	_, err = store.FetchByID(ctx, c.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestCapacityScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	date := types.At(time.Now().Add(24 * time.Hour))
	c, err := store.Create(ctx, types.Mention(1), date, "Lyon", "Paris", "5km", "2h", 2)
	require.NoError(t, err)

	c.Join(types.Mention(10))
	c.Join(types.Mention(20))
	require.NoError(t, store.Save(ctx, c))

	got, err := store.FetchByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Full(), "a third join must be refused by the command layer")
	assert.Equal(t, 0, got.SeatsLeft())

	got.Leave(types.Mention(10))
	require.NoError(t, store.Save(ctx, got))

	got, err = store.FetchByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Full())
	assert.Equal(t, []types.Mention{20}, got.Joiners)
	assert.True(t, got.Joined(20))
	assert.False(t, got.Joined(10))
}
