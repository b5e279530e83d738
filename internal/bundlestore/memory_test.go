package bundlestore_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/bundlestore"
)

func TestMemoryStorePutGetRoundTrip(t *testing.T) {
	store := bundlestore.NewMemoryStore()
	ctx := context.Background()
	payload := []byte(`{"bundle_type":"backup"}`)

	require.NoError(t, store.Put(ctx, "lock-backup-2026-07-29.vef.json", bytes.NewReader(payload), int64(len(payload))))

	rc, err := store.Get(ctx, "lock-backup-2026-07-29.vef.json")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestMemoryStoreGetMissingFails(t *testing.T) {
	store := bundlestore.NewMemoryStore()
	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
}
