package discord

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/types"
)

// Dispatch sends message to each user as a DM. Users the bot cannot reach
// (closed DMs, missing permissions) are collected and pinged once in the
// fallback channel instead, so nobody is silently skipped.
func Dispatch(ctx context.Context, s *discordgo.Session, users []types.Mention, fallbackChannelID string, message string) {
	var unreachable []string

	for _, user := range users {
		dm, err := s.UserChannelCreate(user.Snowflake(), discordgo.WithContext(ctx))
		if err != nil {
			log.Printf("discord: cannot open DM with %s: %v", user, err)
			unreachable = append(unreachable, user.String())
			continue
		}
		if _, err := s.ChannelMessageSend(dm.ID, message, discordgo.WithContext(ctx)); err != nil {
			log.Printf("discord: cannot DM %s: %v", user, err)
			unreachable = append(unreachable, user.String())
		}
	}

	if len(unreachable) == 0 {
		return
	}

	fallback := message + "\n" + strings.Join(unreachable, " ")
	if _, err := s.ChannelMessageSend(fallbackChannelID, fallback, discordgo.WithContext(ctx)); err != nil {
		log.Printf("discord: fallback broadcast to %s failed: %v", fallbackChannelID, err)
	}
}
