package app_test

import (
	"context"
	"os"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/internal/app"
)

const settingsYAML = `version: "1"
logging:
  level: debug
market_data:
  schemes: [Tick]
  feed:
    url: ws://localhost:9090/feed
    reconnect_min: 1s
    reconnect_max: 30s
views: []
`

func TestComponents_Graft(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(cwd))
	}()

	tmpDir := t.TempDir()
	require.NoError(t, os.Chdir(tmpDir))
	require.NoError(t, os.WriteFile("vista.yaml", []byte(settingsYAML), 0o644))

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)

	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
