package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeAppWithShippedConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "../../configs/config.yaml")
	t.Setenv("HTTP_ADDRESS", "127.0.0.1:0")
	for _, key := range []string{
		"TILES_ACCESS_TOKEN",
		"TILES_URL_TEMPLATE",
		"TILES_POSTGRES_DSN",
		"TILES_STORAGE_DRIVER",
		"TILES_VALKEY_ENABLED",
	} {
		t.Setenv(key, "")
	}

	app, err := initializeApp()
	require.NoError(t, err)
	require.NotNil(t, app)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, app.Run(ctx))
}
