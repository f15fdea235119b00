package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"moba-stats/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// SetupGateway opens a gateway over a fresh SQLite file in a temp dir with the
// schema applied. The gateway is closed when the test ends.
func SetupGateway(t *testing.T) *database.Gateway {
	t.Helper()
	gw, err := database.Open(filepath.Join(t.TempDir(), "moba.db"), zerolog.Nop())
	require.NoError(t, err, "SetupGateway: Open")
	t.Cleanup(func() { _ = gw.Close() })

	require.NoError(t, gw.CreateAll(context.Background()), "SetupGateway: CreateAll")
	return gw
}

// SetupSeededGateway is SetupGateway plus the bundled sample data.
func SetupSeededGateway(t *testing.T) *database.Gateway {
	t.Helper()
	gw := SetupGateway(t)
	require.NoError(t, gw.SeedAll(context.Background()), "SetupSeededGateway: SeedAll")
	return gw
}
