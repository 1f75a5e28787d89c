// Package data holds the bot's optional side channels: a Redis stream of
// lifecycle events for anything downstream that wants to watch carpool
// activity.
package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// EventStream is the Redis stream lifecycle events are appended to.
const EventStream = "covbot.events"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// Events publishes lifecycle events. A nil *Events (Redis not configured)
// is valid and publishes nothing.
type Events struct {
	rdb *redis.Client
}

func NewEvents(rdb *redis.Client) *Events {
	if rdb == nil {
		return nil
	}
	return &Events{rdb: rdb}
}

// Publish appends one event to the stream. Failures are logged, never
// returned: losing an event must not fail the command that produced it.
func (e *Events) Publish(ctx context.Context, kind string, fields map[string]interface{}) {
	if e == nil {
		return
	}

	values := map[string]interface{}{"kind": kind}
	for k, v := range fields {
		values[k] = v
	}

	if _, err := e.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: EventStream,
		Values: values,
	}).Result(); err != nil {
		log.Printf("data: publish %s event: %v", kind, err)
	}
}
