package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pigdice/internal/engine"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Addr   string
	Target int
	// AllowedOrigins holds extra WebSocket origin patterns, so invite
	// links opened from a separately hosted client can still connect.
	// Empty means same-origin only.
	AllowedOrigins []string
}

func Default() Config {
	return Config{
		Addr:   ":8080",
		Target: engine.DefaultTarget,
	}
}

// FromEnv overlays PIG_ADDR, PIG_TARGET and PIG_ALLOWED_ORIGINS (comma
// separated) onto the defaults. Unparsable or non-positive targets are
// ignored.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv("PIG_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PIG_TARGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Target = n
		}
	}
	if v := os.Getenv("PIG_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	return cfg
}
