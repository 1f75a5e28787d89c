// Round-trip smoke test for the Discord-channel record log. Points at a
// scratch channel, never at the production database channels.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/discord"
)

func main() {
	token := os.Getenv("DISCORD_TOKEN")
	channelID := os.Getenv("SCRATCH_CHANNEL_ID")
	if token == "" || channelID == "" {
		log.Fatal("DISCORD_TOKEN and SCRATCH_CHANNEL_ID are required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	l := discord.NewChannelLog(session, channelID)

	id, err := l.Append(ctx, "storage smoke entry")
	if err != nil {
		log.Fatalf("append: %v", err)
	}
	log.Printf("appended entry %s", id)

	if err := l.Edit(ctx, id, "storage smoke entry (edited)"); err != nil {
		log.Fatalf("edit: %v", err)
	}

	entries, err := l.History(ctx, 5)
	if err != nil {
		log.Fatalf("history: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.ID == id && e.Content == "storage smoke entry (edited)" {
			found = true
			break
		}
	}
	if !found {
		log.Fatalf("history: entry %s not found with edited content", id)
	}
	log.Printf("history: %d entries, edit visible", len(entries))

	if err := l.Delete(ctx, id); err != nil {
		log.Fatalf("delete: %v", err)
	}
	log.Printf("deleted entry %s", id)

	log.Println("✓ append/edit/history/delete round-trip passed")
}
