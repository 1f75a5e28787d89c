package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/record"
)

// historyPageSize is the most messages Discord returns per request.
const historyPageSize = 100

// ChannelLog backs a record store with a Discord channel: one record per
// message, message ids as record ids. Message snowflakes are decimal and
// time ordered, which is exactly what the store's suffix lookup needs.
type ChannelLog struct {
	session   *discordgo.Session
	channelID string
}

var _ record.Log = (*ChannelLog)(nil)

func NewChannelLog(session *discordgo.Session, channelID string) *ChannelLog {
	return &ChannelLog{session: session, channelID: channelID}
}

func (l *ChannelLog) Append(ctx context.Context, content string) (string, error) {
	msg, err := l.session.ChannelMessageSend(l.channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("discord: send to %s: %w", l.channelID, err)
	}
	return msg.ID, nil
}

func (l *ChannelLog) Edit(ctx context.Context, id, content string) error {
	if _, err := l.session.ChannelMessageEdit(l.channelID, id, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: edit %s in %s: %w", id, l.channelID, err)
	}
	return nil
}

func (l *ChannelLog) Delete(ctx context.Context, id string) error {
	if err := l.session.ChannelMessageDelete(l.channelID, id, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: delete %s in %s: %w", id, l.channelID, err)
	}
	return nil
}

// History pages through the channel newest first, at most limit messages
// when limit is positive.
func (l *ChannelLog) History(ctx context.Context, limit int) ([]record.Entry, error) {
	var entries []record.Entry
	beforeID := ""

	for {
		pageSize := historyPageSize
		if limit > 0 && limit-len(entries) < pageSize {
			pageSize = limit - len(entries)
		}
		if pageSize <= 0 {
			break
		}

		msgs, err := l.session.ChannelMessages(l.channelID, pageSize, beforeID, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("discord: history of %s: %w", l.channelID, err)
		}
		if len(msgs) == 0 {
			break
		}

		for _, msg := range msgs {
			entries = append(entries, record.Entry{ID: msg.ID, Content: msg.Content})
		}
		beforeID = msgs[len(msgs)-1].ID

		if len(msgs) < pageSize {
			break
		}
	}

	return entries, nil
}
