package bot

import (
	"fmt"
	"strings"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/rank"
)

const leaderboardSize = 10

// RenderCarpool formats one listing as the bullet block /covoiturage liste
// shows.
func RenderCarpool(c *carpool.Carpool, longIDs bool) string {
	id := c.ShortID()
	if longIDs {
		id = c.ID
	}

	joiners := make([]string, len(c.Joiners))
	for i, j := range c.Joiners {
		joiners[i] = j.String()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "- **Id**: %s\n", id)
	fmt.Fprintf(&sb, "  - **Conducteur**: %s\n", c.Owner)
	fmt.Fprintf(&sb, "  - **Date**: %s\n", c.Date)
	fmt.Fprintf(&sb, "  - **Départ**: %s (+/- %s)\n", c.Departure, c.Distance)
	fmt.Fprintf(&sb, "  - **Arrivée**: %s en %s\n", c.Arrival, c.Duration)
	fmt.Fprintf(&sb, "  - **Places disponibles**: %d (%d en tout)\n", c.SeatsLeft(), c.Seats)
	fmt.Fprintf(&sb, "  - **Réservataires**: %s\n", strings.Join(joiners, ", "))
	return sb.String()
}

func RenderList(entries []*carpool.Carpool, longIDs bool) string {
	if len(entries) == 0 {
		return "Il n'y a pas de covoiturages disponibles"
	}

	blocks := make([]string, len(entries))
	for i, c := range entries {
		blocks[i] = RenderCarpool(c, longIDs)
	}
	return "Voici les covoiturages disponibles:\n" + strings.Join(blocks, "\n")
}

// RenderRank formats the caller's own /covoiturage rang reply.
func RenderRank(position int, r *rank.Rank) string {
	return fmt.Sprintf("Vous êtes #%d avec %d covoiturages proposés et %d covoiturages pris",
		position, r.Proposed, r.Participated)
}

// RenderLeaderboard formats the top of an already sorted rank slice.
func RenderLeaderboard(sorted []*rank.Rank) string {
	top := sorted
	if len(top) > leaderboardSize {
		top = top[:leaderboardSize]
	}

	lines := make([]string, len(top))
	for i, r := range top {
		lines[i] = fmt.Sprintf("#%d %s - %d proposés, %d pris", i+1, r.Owner, r.Proposed, r.Participated)
	}
	return strings.Join(lines, "\n")
}
