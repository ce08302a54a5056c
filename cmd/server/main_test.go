package main

import (
	"testing"

	"github.com/benbeisheim/rollerball-backend/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = "warn"

	assert.Equal(t, zerolog.WarnLevel, newLogger(cfg).GetLevel())

	cfg.LogPretty = true
	assert.Equal(t, zerolog.WarnLevel, newLogger(cfg).GetLevel())
}
