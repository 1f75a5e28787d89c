// covbot-doctor probes everything the bot needs at runtime: Discord
// credentials, the three database channels, and Redis when configured. Run
// it on a box before deploying there.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/config"
	"github.com/yuft/covbot/src/data"
)

var timeoutFlag = flag.Duration("timeout", 15*time.Second, "Per-check timeout")

type check struct {
	name string
	run  func(ctx context.Context) error
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}
	log.Printf("✅ config loaded")

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("❌ discord session: %v", err)
	}

	checks := []check{
		{"discord auth", func(ctx context.Context) error {
			user, err := session.User("@me", discordgo.WithContext(ctx))
			if err != nil {
				return err
			}
			log.Printf("   logged in as %s", user.Username)
			return nil
		}},
		channelCheck(session, "carpool channel", cfg.CarpoolChannelID),
		channelCheck(session, "reminder channel", cfg.ReminderChannelID),
		channelCheck(session, "rank channel", cfg.RankChannelID),
	}

	if cfg.RedisURL != "" {
		rdb := data.MustRedis(cfg.RedisURL)
		defer rdb.Close()
		checks = append(checks, check{"redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	} else {
		log.Printf("   redis not configured, skipping")
	}

	failed := 0
	for _, c := range checks {
		if err := runCheck(c); err != nil {
			log.Printf("❌ %s: %v", c.name, err)
			failed++
			continue
		}
		log.Printf("✅ %s", c.name)
	}

	if failed > 0 {
		log.Printf("%d of %d checks failed", failed, len(checks))
		os.Exit(1)
	}
	log.Printf("all %d checks passed", len(checks))
}

func runCheck(c check) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()
	return c.run(ctx)
}

func channelCheck(session *discordgo.Session, name, channelID string) check {
	return check{name, func(ctx context.Context) error {
		ch, err := session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("metadata: %w", err)
		}
		if _, err := session.ChannelMessages(channelID, 1, "", "", "", discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("history: %w", err)
		}
		log.Printf("   #%s ok", ch.Name)
		return nil
	}}
}
