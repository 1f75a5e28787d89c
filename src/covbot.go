package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/bot"
	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/config"
	"github.com/yuft/covbot/src/data"
	"github.com/yuft/covbot/src/discord"
	"github.com/yuft/covbot/src/rank"
	"github.com/yuft/covbot/src/reminder"
	"github.com/yuft/covbot/src/taskpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var events *data.Events
	if cfg.RedisURL != "" {
		events = data.NewEvents(data.MustRedis(cfg.RedisURL))
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	carpools := carpool.NewStore(discord.NewChannelLog(session, cfg.CarpoolChannelID))
	ranks := rank.NewStore(discord.NewChannelLog(session, cfg.RankChannelID))

	pool := taskpool.New()
	reminders := reminder.NewStore(
		discord.NewChannelLog(session, cfg.ReminderChannelID),
		carpool.SourceCodec(carpools),
		pool,
		cfg.ReminderPollInterval,
	)

	covbot := bot.New(ctx, bot.Config{
		Session:   session,
		GuildID:   cfg.GuildID,
		Carpools:  carpools,
		Ranks:     ranks,
		Reminders: reminders,
		Events:    events,
	})

	if err := session.Open(); err != nil {
		log.Fatalf("discord: open: %v", err)
	}

	pool.Run(func() { reminders.Run(ctx, covbot.SendReminder) })

	// Wait for termination
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	cancel()
	if err := session.Close(); err != nil {
		log.Printf("discord: close: %v", err)
	}
}
