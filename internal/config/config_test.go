package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, []string{"Resolved", "Closed"}, cfg.Tickets.ClosedStates)
}

func TestClosedStatesFromEnv(t *testing.T) {
	t.Setenv("TICKET_CLOSED_STATES", " Done , Archived ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Done", "Archived"}, cfg.Tickets.ClosedStates)
}

func TestAddr(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "9000"}
	assert.Equal(t, "127.0.0.1:9000", app.Addr())
}
