package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Addr               string `envconfig:"ADDR" default:":8080"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	RedisURL           string `envconfig:"REDIS_URL" default:"localhost:6379"`

	AccessTokenSecret  string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	RefreshTokenSecret string `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`
	AccessTokenTTLHr   int    `envconfig:"ACCESS_TOKEN_TTL_HR" default:"24"`
	RefreshTokenTTLHr  int    `envconfig:"REFRESH_TOKEN_TTL_HR" default:"8760"`

	// Interval clients should wait between unread-count polls.
	MessagePollSeconds int `envconfig:"MESSAGE_POLL_INTERVAL_SECONDS" default:"15"`
}

// Load reads configuration from the environment. A .env file is consulted
// only outside of hosted deployments (where RENDER is set).
func Load() (App, error) {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	var c App
	err := envconfig.Process("", &c)
	return c, err
}
