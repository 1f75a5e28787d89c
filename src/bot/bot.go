// Package bot is the command layer: it maps slash-command interactions onto
// the carpool, rank and reminder stores and renders the replies. All user
// facing strings are French, matching the community the bot serves.
package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/data"
	"github.com/yuft/covbot/src/discord"
	"github.com/yuft/covbot/src/rank"
	"github.com/yuft/covbot/src/reminder"
	"github.com/yuft/covbot/src/types"
)

type Config struct {
	Session   *discordgo.Session
	GuildID   string
	Carpools  *carpool.Store
	Ranks     *rank.Store
	Reminders *reminder.Store[*carpool.Carpool]
	Events    *data.Events
}

type Bot struct {
	cfg Config
	ctx context.Context
	now func() time.Time
}

// New wires the handlers onto the session. ctx bounds every store call made
// on behalf of an interaction.
func New(ctx context.Context, cfg Config) *Bot {
	b := &Bot{cfg: cfg, ctx: ctx, now: time.Now}
	cfg.Session.AddHandler(b.onReady)
	cfg.Session.AddHandler(b.onInteractionCreate)
	return b
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	log.Printf("Logged in as: %v", s.State.User.Username)

	if err := discord.RegisterSlashCommands(s, b.cfg.GuildID); err != nil {
		log.Printf("bot: failed to register slash commands: %v", err)
		return
	}
	if b.cfg.GuildID != "" {
		log.Printf("bot: slash commands registered for guild %s", b.cfg.GuildID)
	} else {
		log.Printf("bot: slash commands registered globally")
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		cmd := i.ApplicationCommandData()
		if cmd.Name != discord.CommandCovoiturage && cmd.Name != discord.CommandCov {
			return
		}
		b.handleCommand(s, i, cmd)
	case discordgo.InteractionApplicationCommandAutocomplete:
		cmd := i.ApplicationCommandData()
		if cmd.Name != discord.CommandCovoiturage && cmd.Name != discord.CommandCov {
			return
		}
		b.handleAutocomplete(s, i, cmd)
	}
}

// SendReminder is the scheduler's firing callback: it tells the user how
// many minutes remain before their carpool leaves, falling back to the
// channel the reminder was created in when DMs are closed.
func (b *Bot) SendReminder(ctx context.Context, r *reminder.Reminder[*carpool.Carpool]) {
	minutes := int(time.Until(r.Event.Time()).Minutes())
	message := fmt.Sprintf("Votre covoiturage part dans %d minutes", minutes)
	discord.Dispatch(ctx, b.cfg.Session, []types.Mention{r.User}, r.Fallback.Snowflake(), message)
}
