package beacon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/driftlock/timevault/internal/beacon" // registers http/mock/fixture backends
	registrybeacon "github.com/driftlock/timevault/internal/registry/beacon"
)

func TestSelectMockBackend(t *testing.T) {
	client, err := registrybeacon.Select("mock", nil)
	require.NoError(t, err)
	_, err = client.ChainInfo(context.Background())
	require.NoError(t, err)
}

func TestSelectUnknownBackend(t *testing.T) {
	_, err := registrybeacon.Select("smoke-signal", nil)
	require.Error(t, err)
}

func TestNamesIncludesRegisteredBackends(t *testing.T) {
	names := registrybeacon.Names()
	require.Contains(t, names, "http")
	require.Contains(t, names, "mock")
	require.Contains(t, names, "fixture")
}
