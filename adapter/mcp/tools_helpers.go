package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/dayfocus/adapter/cli"
	"github.com/felixgeelhaar/dayfocus/pkg/observability"
)

// toolContext tags ctx with the tool being served so handler logs and plan
// events carry it.
func toolContext(ctx context.Context, app *cli.App, tool string) context.Context {
	inv := observability.Invocation{Surface: observability.SurfaceMCP, Operation: tool}
	if app != nil {
		inv.UserID = app.CurrentUserID
	}
	return observability.StartInvocation(ctx, inv)
}

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.UUID{}, errors.New("id is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
