package localindex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/localindex"
	"github.com/driftlock/timevault/internal/vaultcore"
)

func TestMemoryPutGetIdempotent(t *testing.T) {
	idx := localindex.NewMemory()
	ctx := context.Background()
	ref := vaultcore.VaultRef{ID: "abc", CreatedAtMs: 1}

	require.NoError(t, idx.Put(ctx, ref))
	require.NoError(t, idx.Put(ctx, ref))

	got, ok, err := idx.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ref, got)
}

func TestMemoryGetMissing(t *testing.T) {
	idx := localindex.NewMemory()
	_, ok, err := idx.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryListOrderedByCreatedAtDescending(t *testing.T) {
	idx := localindex.NewMemory()
	ctx := context.Background()
	require.NoError(t, idx.Put(ctx, vaultcore.VaultRef{ID: "a", CreatedAtMs: 1}))
	require.NoError(t, idx.Put(ctx, vaultcore.VaultRef{ID: "b", CreatedAtMs: 3}))
	require.NoError(t, idx.Put(ctx, vaultcore.VaultRef{ID: "c", CreatedAtMs: 2}))

	list, err := idx.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemoryDelete(t *testing.T) {
	idx := localindex.NewMemory()
	ctx := context.Background()
	require.NoError(t, idx.Put(ctx, vaultcore.VaultRef{ID: "a"}))
	require.NoError(t, idx.Delete(ctx, "a"))
	_, ok, err := idx.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryIDs(t *testing.T) {
	idx := localindex.NewMemory()
	ctx := context.Background()
	require.NoError(t, idx.Put(ctx, vaultcore.VaultRef{ID: "a"}))
	require.NoError(t, idx.Put(ctx, vaultcore.VaultRef{ID: "b"}))

	ids, err := idx.IDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	_, ok := ids["a"]
	require.True(t, ok)
}
