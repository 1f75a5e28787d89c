package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/yuft/covbot/src/rank"
)

type handlers struct {
	stores Stores
	// Listing free-text fields are user-authored; strip anything that is
	// not plain text before serving them outside Discord.
	sanitizer *bluemonday.Policy
}

func newHandlers(stores Stores) *handlers {
	return &handlers{stores: stores, sanitizer: bluemonday.StrictPolicy()}
}

func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type carpoolView struct {
	ID        string   `json:"id"`
	ShortID   string   `json:"short_id"`
	OwnerID   string   `json:"owner_id"`
	Owner     string   `json:"owner"`
	Date      int64    `json:"date"`
	Departure string   `json:"departure"`
	Arrival   string   `json:"arrival"`
	Distance  string   `json:"distance"`
	Duration  string   `json:"duration"`
	Seats     int      `json:"seats"`
	SeatsLeft int      `json:"seats_left"`
	Joiners   []string `json:"joiners"`
}

func (h *handlers) Carpools(c *gin.Context) {
	entries, err := h.stores.Carpools.FetchAll(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	views := make([]carpoolView, 0, len(entries))
	for _, entry := range entries {
		joiners := make([]string, 0, len(entry.Joiners))
		for _, j := range entry.Joiners {
			joiners = append(joiners, j.String())
		}
		views = append(views, carpoolView{
			ID:        entry.ID,
			ShortID:   entry.ShortID(),
			OwnerID:   entry.Owner.Snowflake(),
			Owner:     entry.Owner.String(),
			Date:      int64(entry.Date),
			Departure: h.sanitizer.Sanitize(entry.Departure),
			Arrival:   h.sanitizer.Sanitize(entry.Arrival),
			Distance:  h.sanitizer.Sanitize(entry.Distance),
			Duration:  h.sanitizer.Sanitize(entry.Duration),
			Seats:     entry.Seats,
			SeatsLeft: entry.SeatsLeft(),
			Joiners:   joiners,
		})
	}

	c.JSON(http.StatusOK, gin.H{"carpools": views})
}

type rankView struct {
	Position     int     `json:"position"`
	Owner        string  `json:"owner"`
	Proposed     int     `json:"proposed"`
	Participated int     `json:"participated"`
	Score        float64 `json:"score"`
}

func (h *handlers) Leaderboard(c *gin.Context) {
	ranks, err := h.stores.Ranks.FetchAll(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	rank.SortByScore(ranks)

	views := make([]rankView, 0, len(ranks))
	for i, r := range ranks {
		views = append(views, rankView{
			Position:     i + 1,
			Owner:        r.Owner.String(),
			Proposed:     r.Proposed,
			Participated: r.Participated,
			Score:        r.Score(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": views})
}
