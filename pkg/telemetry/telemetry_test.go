package telemetry_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/modstrap/pkg/telemetry"
	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("MODSTRAP_OTEL_ENDPOINT", "")

	shutdown, err := telemetry.Setup(context.Background())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("MODSTRAP_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("MODSTRAP_OTEL_ENABLED", "false")

	shutdown, err := telemetry.Setup(context.Background())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetup_InvalidEnabledValue(t *testing.T) {
	t.Setenv("MODSTRAP_OTEL_ENABLED", "maybe")

	_, err := telemetry.Setup(context.Background())
	require.Error(t, err)
}

func TestSetupWith_CreatesProvider(t *testing.T) {
	// non-routable, nothing is exported
	shutdown, err := telemetry.SetupWith(context.Background(), telemetry.Settings{
		Endpoint: "http://192.0.2.1:4318",
		Enabled:  true,
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
