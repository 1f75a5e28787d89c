package carpool

import (
	"context"

	"github.com/yuft/covbot/src/reminder"
)

// SourceCodec lets reminders reference a carpool by its backing id. A
// resolve miss (the carpool was deleted or expired) orphans the reminder.
func SourceCodec(s *Store) reminder.SourceCodec[*Carpool] {
	return reminder.SourceCodec[*Carpool]{
		Encode: func(c *Carpool) string { return c.ID },
		Resolve: func(ctx context.Context, key string) (*Carpool, error) {
			return s.FetchByID(ctx, key)
		},
	}
}
