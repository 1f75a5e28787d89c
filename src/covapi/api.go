package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/yuft/covbot/src/carpool"
	"github.com/yuft/covbot/src/config"
	"github.com/yuft/covbot/src/covapi/webserver"
	"github.com/yuft/covbot/src/discord"
	"github.com/yuft/covbot/src/rank"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// REST-only session: the API reads channel history, it never joins the
	// gateway.
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}

	router := webserver.New(cfg.CORSOrigins, webserver.Stores{
		Carpools: carpool.NewStore(discord.NewChannelLog(session, cfg.CarpoolChannelID)),
		Ranks:    rank.NewStore(discord.NewChannelLog(session, cfg.RankChannelID)),
	})

	httpSrv := &http.Server{
		Addr:         cfg.APIAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("covbot API listening on %s", cfg.APIAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
