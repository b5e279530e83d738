package vaultcore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/driftlock/timevault/internal/beacon"
	"github.com/driftlock/timevault/internal/vaulterrors"
	"github.com/driftlock/timevault/internal/vaultcore"
)

type memIndex struct {
	mu   sync.Mutex
	refs map[string]vaultcore.VaultRef
}

func newMemIndex() *memIndex {
	return &memIndex{refs: map[string]vaultcore.VaultRef{}}
}

func (m *memIndex) Put(ctx context.Context, ref vaultcore.VaultRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs[ref.ID] = ref
	return nil
}

func (m *memIndex) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refs, id)
	return nil
}

func (m *memIndex) get(id string) (vaultcore.VaultRef, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref, ok := m.refs[id]
	return ref, ok
}

func TestCreateDraftRejectsPastUnlockTime(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	c, err := mock.ChainInfo(context.Background())
	require.NoError(t, err)

	_, err = vaultcore.CreateDraft(c, []byte("x"), time.Now().UnixMilli()-1, false, "")
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindUnlockInPast, kind)
}

func TestArmAndUnlockHappyPath(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte("hello"), time.Now().Add(10*time.Second).UnixMilli(), false, "")
	require.NoError(t, err)

	index := newMemIndex()
	ref, err := vaultcore.ArmDraft(ctx, mock, index, draft)
	require.NoError(t, err)
	draft.WipeDraft()

	require.Equal(t, c.RoundForTime(ref.UnlockTimeMs), ref.TlockRound)

	stored, ok := index.get(ref.ID)
	require.True(t, ok)
	require.Equal(t, *ref, stored)

	plaintext, err := vaultcore.Unlock(ctx, c, mock, index, *ref)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), plaintext)
}

func TestUnlockFailsBeforeRoundProduced(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte("hello"), time.Now().Add(10*time.Second).UnixMilli(), false, "")
	require.NoError(t, err)
	index := newMemIndex()
	ref, err := vaultcore.ArmDraft(ctx, mock, index, draft)
	require.NoError(t, err)
	draft.WipeDraft()

	fixture := beacon.NewFixtureClient(c)
	_, err = vaultcore.Unlock(ctx, c, fixture, index, *ref)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindRoundNotYet, kind)
}

func TestUnlockFailsOnBitFlippedInline(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte("hello"), time.Now().Add(10*time.Second).UnixMilli(), false, "")
	require.NoError(t, err)
	index := newMemIndex()
	ref, err := vaultcore.ArmDraft(ctx, mock, index, draft)
	require.NoError(t, err)
	draft.WipeDraft()

	tampered := *ref
	runes := []byte(tampered.InlineData)
	if runes[0] == 'A' {
		runes[0] = 'B'
	} else {
		runes[0] = 'A'
	}
	tampered.InlineData = string(runes)

	_, err = vaultcore.Unlock(ctx, c, mock, index, tampered)
	require.Error(t, err)
	kind, ok := vaulterrors.KindOf(err)
	require.True(t, ok)
	require.Equal(t, vaulterrors.KindAEADAuthFail, kind)
}

func TestUnlockFailsOnTamperedEnvelope(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte("hello"), time.Now().Add(10*time.Second).UnixMilli(), false, "")
	require.NoError(t, err)
	index := newMemIndex()
	ref, err := vaultcore.ArmDraft(ctx, mock, index, draft)
	require.NoError(t, err)
	draft.WipeDraft()

	tampered := *ref
	tampered.TlockCiphertext = tampered.TlockCiphertext[:len(tampered.TlockCiphertext)-10] + "XXXXXXXXXX"

	_, err = vaultcore.Unlock(ctx, c, mock, index, tampered)
	require.Error(t, err)
}

func TestDestroyAfterReadDeletesOnSuccess(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	ctx := context.Background()
	c, err := mock.ChainInfo(ctx)
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte("secret"), time.Now().Add(10*time.Second).UnixMilli(), true, "")
	require.NoError(t, err)
	index := newMemIndex()
	ref, err := vaultcore.ArmDraft(ctx, mock, index, draft)
	require.NoError(t, err)
	draft.WipeDraft()

	_, err = vaultcore.Unlock(ctx, c, mock, index, *ref)
	require.NoError(t, err)

	_, ok := index.get(ref.ID)
	require.False(t, ok, "destroy_after_read must remove the ref after a successful unlock")
}

func TestWipeDraftZeroesSensitiveFields(t *testing.T) {
	mock, err := beacon.NewMockClient()
	require.NoError(t, err)
	c, err := mock.ChainInfo(context.Background())
	require.NoError(t, err)

	draft, err := vaultcore.CreateDraft(c, []byte("hello"), time.Now().Add(10*time.Second).UnixMilli(), false, "")
	require.NoError(t, err)
	draft.WipeDraft()

	var zeroKey [32]byte
	require.Equal(t, zeroKey, [32]byte(draft.RawKey))
	for _, b := range draft.AEADBlob {
		require.Equal(t, byte(0), b)
	}
}
