// Package config loads process configuration from the environment. Every
// variable resolves both with the COVBOT_ prefix and bare, so a deployment
// can export DISCORD_TOKEN directly.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Token   string `envconfig:"DISCORD_TOKEN" required:"true"`
	GuildID string `envconfig:"GUILD_ID"`

	// The three database channels. Their message history is the only
	// persistent storage the bot has.
	CarpoolChannelID  string `envconfig:"CARPOOL_CHANNEL_ID" required:"true"`
	ReminderChannelID string `envconfig:"REMINDER_CHANNEL_ID" required:"true"`
	RankChannelID     string `envconfig:"RANK_CHANNEL_ID" required:"true"`

	ReminderPollInterval time.Duration `envconfig:"REMINDER_POLL_INTERVAL" default:"5m"`

	APIAddr     string   `envconfig:"API_ADDR" default:":8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Empty disables lifecycle event publishing.
	RedisURL string `envconfig:"REDIS_URL"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("covbot", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
