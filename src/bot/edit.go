package bot

import (
	"fmt"
	"time"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/frtime"
	"github.com/yuft/covbot/src/types"
)

// tripEdit holds the optional fields of modifier; nil means untouched.
type tripEdit struct {
	Day       *time.Time
	Clock     *time.Duration
	Departure *string
	Arrival   *string
	Distance  *string
	Duration  *string
	Seats     *int
}

// applyEdit mutates c in place and returns one French changelog line per
// change. Day and clock compose on the running departure value, so editing
// both in one command keeps both. timeChanged tells the caller to
// reschedule reminders.
func applyEdit(c *carpool.Carpool, e tripEdit) (changelog []string, timeChanged bool) {
	date := c.Date.Time()

	if e.Day != nil {
		changelog = append(changelog, fmt.Sprintf("**Jour**: %s -> %s",
			frtime.FormatDate(date), frtime.FormatDate(*e.Day)))
		day := *e.Day
		date = time.Date(day.Year(), day.Month(), day.Day(),
			date.Hour(), date.Minute(), date.Second(), 0, date.Location())
		timeChanged = true
	}
	if e.Clock != nil {
		old := frtime.FormatTime(date)
		midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		date = midnight.Add(*e.Clock)
		changelog = append(changelog, fmt.Sprintf("**Heure**: %s -> %s", old, frtime.FormatTime(date)))
		timeChanged = true
	}
	if timeChanged {
		c.Date = types.At(date)
	}

	if e.Departure != nil {
		changelog = append(changelog, fmt.Sprintf("**Lieu de départ**: %s -> %s", c.Departure, *e.Departure))
		c.Departure = *e.Departure
	}
	if e.Arrival != nil {
		changelog = append(changelog, fmt.Sprintf("**Lieu d'arrivé**: %s -> %s", c.Arrival, *e.Arrival))
		c.Arrival = *e.Arrival
	}
	if e.Distance != nil {
		changelog = append(changelog, fmt.Sprintf("**Distance**: %s -> %s", c.Distance, *e.Distance))
		c.Distance = *e.Distance
	}
	if e.Duration != nil {
		changelog = append(changelog, fmt.Sprintf("**Durée du trajet**: %s -> %s", c.Duration, *e.Duration))
		c.Duration = *e.Duration
	}
	if e.Seats != nil {
		changelog = append(changelog, fmt.Sprintf("**Places disponibles**: %d -> %d", c.Seats, *e.Seats))
		c.Seats = *e.Seats
	}

	return changelog, timeChanged
}
