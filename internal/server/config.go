package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server settings, parsed from the environment.
type Config struct {
	Addr          string        `env:"UNOROOM_ADDR" envDefault:":3000"`
	JWTSecret     string        `env:"UNOROOM_JWT_SECRET" envDefault:"replace-this-with-a-secure-secret"`
	JWTTTL        time.Duration `env:"UNOROOM_JWT_TTL" envDefault:"168h"`
	MaxPlayersCap int           `env:"UNOROOM_MAX_PLAYERS_CAP" envDefault:"8"`
	HandSize      int           `env:"UNOROOM_HAND_SIZE" envDefault:"7"`
	DrawEndsTurn  bool          `env:"UNOROOM_DRAW_ENDS_TURN" envDefault:"false"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
