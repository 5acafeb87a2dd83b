package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/middleware"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/internal/app"
	"github.com/felixgeelhaar/dayfocus/pkg/config"
)

func TestNewServer_RegistersTools(t *testing.T) {
	srv, err := NewServer(&cli.App{}, "", nil)
	require.NoError(t, err)

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)
	assert.Len(t, tools, 9)
}

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, "1.0.0", nil)
	assert.Error(t, err)
}

func TestServe_Validation(t *testing.T) {
	ctx := context.Background()

	assert.EqualError(t, Serve(ctx, nil, &cli.App{}, "dev", nil), "config is required")
	assert.EqualError(t, Serve(ctx, &config.Config{}, nil, "dev", nil), "CLI app is required")
}

func TestMCPLogger(t *testing.T) {
	var buf bytes.Buffer
	adapter := mcpLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	adapter.Info("request", middleware.Field{Key: "method", Value: "tools/list"})
	adapter.Warn("slow")
	adapter.Error("failed", middleware.Field{Key: "code", Value: 401})
	adapter.Debug("trace")

	out := buf.String()
	assert.Contains(t, out, "method=tools/list")
	assert.Contains(t, out, "code=401")
	assert.Contains(t, out, "slow")
	assert.Contains(t, out, "trace")
}

func TestNewCLIApp(t *testing.T) {
	userID := uuid.New()
	container := &app.Container{
		Config: &config.Config{PlanMaxTasks: 4, RankLimit: 12},
		UserID: userID,
	}

	cliApp := NewCLIApp(container)

	assert.Equal(t, userID, cliApp.CurrentUserID)
	assert.Equal(t, 4, cliApp.PlanMaxTasks)
	assert.Equal(t, 12, cliApp.RankLimit)
}
