package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfiguresListener(t *testing.T) {
	cfg := &config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         8123,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	srv := NewServer(cfg, gin.New(), zerolog.Nop())
	assert.Equal(t, "127.0.0.1:8123", srv.Addr())
}

func TestShutdownLogsThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	srv := NewServer(&config.ServerConfig{Host: "127.0.0.1", Port: 0}, gin.New(), logger)
	require.NoError(t, srv.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "http server")
	assert.Contains(t, buf.String(), `"component":"http_server"`)
}
