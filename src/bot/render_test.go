package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/rank"
	"github.com/yuft/covbot/src/types"
)

func sampleCarpool() *carpool.Carpool {
	return &carpool.Carpool{
		ID:        "112233445566778899",
		Owner:     types.Mention(42),
		Date:      types.Timestamp(1700000000),
		Departure: "Lyon",
		Arrival:   "Paris",
		Distance:  "5km",
		Duration:  "4h30",
		Seats:     3,
		Joiners:   []types.Mention{10, 20},
	}
}

func TestRenderCarpoolShortAndLongIDs(t *testing.T) {
	c := sampleCarpool()

	short := RenderCarpool(c, false)
	assert.Contains(t, short, "- **Id**: 66778899\n")
	assert.NotContains(t, short, "112233445566778899")

	long := RenderCarpool(c, true)
	assert.Contains(t, long, "- **Id**: 112233445566778899\n")
}

func TestRenderCarpoolBlock(t *testing.T) {
	got := RenderCarpool(sampleCarpool(), false)

	assert.Contains(t, got, "**Conducteur**: <@42>")
	assert.Contains(t, got, "**Date**: <t:1700000000>")
	assert.Contains(t, got, "**Départ**: Lyon (+/- 5km)")
	assert.Contains(t, got, "**Arrivée**: Paris en 4h30")
	assert.Contains(t, got, "**Places disponibles**: 1 (3 en tout)")
	assert.Contains(t, got, "**Réservataires**: <@10>, <@20>")
}

func TestRenderListEmpty(t *testing.T) {
	assert.Equal(t, "Il n'y a pas de covoiturages disponibles", RenderList(nil, false))
}

func TestRenderListHeader(t *testing.T) {
	got := RenderList([]*carpool.Carpool{sampleCarpool()}, false)
	assert.True(t, strings.HasPrefix(got, "Voici les covoiturages disponibles:\n"))
}

func TestRenderRank(t *testing.T) {
	got := RenderRank(3, &rank.Rank{Owner: 42, Proposed: 5, Participated: 2})
	assert.Equal(t, "Vous êtes #3 avec 5 covoiturages proposés et 2 covoiturages pris", got)
}

func TestRenderLeaderboardCapsAtTen(t *testing.T) {
	var ranks []*rank.Rank
	for i := 0; i < 12; i++ {
		ranks = append(ranks, &rank.Rank{Owner: types.Mention(i + 1), Proposed: 12 - i})
	}
	rank.SortByScore(ranks)

	got := RenderLeaderboard(ranks)
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, "#1 <@1> - 12 proposés, 0 pris", lines[0])
	assert.Equal(t, "#10 <@10> - 3 proposés, 0 pris", lines[9])
}
