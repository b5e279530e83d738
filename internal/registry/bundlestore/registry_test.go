package bundlestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/driftlock/timevault/internal/bundlestore"
	registrybundlestore "github.com/driftlock/timevault/internal/registry/bundlestore"
)

func TestSelectMemoryBackend(t *testing.T) {
	loader, err := registrybundlestore.Select("memory")
	require.NoError(t, err)
	store, err := loader(context.Background())
	require.NoError(t, err)
	require.NotNil(t, store)
}

func TestSelectUnknownBackend(t *testing.T) {
	_, err := registrybundlestore.Select("does-not-exist")
	require.Error(t, err)
}

func TestNamesIncludesMemoryBackend(t *testing.T) {
	require.Contains(t, registrybundlestore.Names(), "memory")
}
