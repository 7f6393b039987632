package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 50, cfg.Target)
	assert.Empty(t, cfg.AllowedOrigins, "same-origin only by default")
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PIG_ADDR", ":9999")
	t.Setenv("PIG_TARGET", "100")
	t.Setenv("PIG_ALLOWED_ORIGINS", "game.example.com, staging.example.com")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 100, cfg.Target)
	assert.Equal(t, []string{"game.example.com", "staging.example.com"}, cfg.AllowedOrigins)
}

func TestFromEnv_IgnoresBadTarget(t *testing.T) {
	for _, v := range []string{"zero", "-3", "0"} {
		t.Setenv("PIG_TARGET", v)
		assert.Equal(t, 50, FromEnv().Target, "target %q should be ignored", v)
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadDotEnv("does-not-exist.env"))
}
