package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, ModeOffline, cfg.Mode)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.NLPTimeout)
	assert.Equal(t, 0.1, cfg.BKTParams.PInit)
	assert.Equal(t, 0.3, cfg.BKTParams.PTransit)
	assert.True(t, cfg.EnableLocalAuth)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("BKT_P_INIT", "0.25")
	t.Setenv("NLP_TIMEOUT", "2s")
	t.Setenv("ENABLE_ARCHIVE", "false")
	t.Setenv("CORS_ORIGINS_ONLINE", "https://a.example, https://b.example")

	cfg := FromEnv()
	assert.Equal(t, ModeOnline, cfg.Mode)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 0.25, cfg.BKTParams.PInit)
	assert.Equal(t, 2*time.Second, cfg.NLPTimeout)
	assert.False(t, cfg.EnableArchive)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOriginsOnline)
}

func TestEnvFloatIgnoresGarbage(t *testing.T) {
	t.Setenv("BKT_P_SLIP", "not-a-number")
	cfg := FromEnv()
	assert.Equal(t, 0.1, cfg.BKTParams.PSlip)
}
