// Package sqlite is a gorm/sqlite-backed localindex.Index, offered as *a*
// concrete backing store for the externally-contracted interface (spec.md
// §4.6 calls the index "external") — not a requirement. Grounded on the
// teacher's gorm.io/driver/sqlite usage for its own durable stores.
package sqlite

import (
	"context"
	"sort"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/driftlock/timevault/internal/vaultcore"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// vaultRefRow is the gorm model backing one VaultRef row.
type vaultRefRow struct {
	ID               string `gorm:"primaryKey"`
	UnlockTimeMs     int64
	TlockCiphertext  string
	TlockRound       uint64
	InlineData       string
	CreatedAtMs      int64 `gorm:"index"`
	Name             string
	DestroyAfterRead bool
}

func (vaultRefRow) TableName() string { return "vault_refs" }

func toRow(ref vaultcore.VaultRef) vaultRefRow {
	return vaultRefRow{
		ID:               ref.ID,
		UnlockTimeMs:     ref.UnlockTimeMs,
		TlockCiphertext:  ref.TlockCiphertext,
		TlockRound:       ref.TlockRound,
		InlineData:       ref.InlineData,
		CreatedAtMs:      ref.CreatedAtMs,
		Name:             ref.Name,
		DestroyAfterRead: ref.DestroyAfterRead,
	}
}

func (r vaultRefRow) toRef() vaultcore.VaultRef {
	return vaultcore.VaultRef{
		ID:               r.ID,
		UnlockTimeMs:     r.UnlockTimeMs,
		TlockCiphertext:  r.TlockCiphertext,
		TlockRound:       r.TlockRound,
		InlineData:       r.InlineData,
		CreatedAtMs:      r.CreatedAtMs,
		Name:             r.Name,
		DestroyAfterRead: r.DestroyAfterRead,
	}
}

// Store is a localindex.Index backed by a sqlite file via gorm.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) a sqlite database at path and
// auto-migrates the vault_refs schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	if err := db.AutoMigrate(&vaultRefRow{}); err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Put(ctx context.Context, ref vaultcore.VaultRef) error {
	row := toRow(ref)
	err := s.db.WithContext(ctx).Save(&row).Error
	if err != nil {
		return vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (vaultcore.VaultRef, bool, error) {
	var row vaultRefRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return vaultcore.VaultRef{}, false, nil
	}
	if err != nil {
		return vaultcore.VaultRef{}, false, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	return row.toRef(), true, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&vaultRefRow{}, "id = ?", id).Error
	if err != nil {
		return vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]vaultcore.VaultRef, error) {
	var rows []vaultRefRow
	err := s.db.WithContext(ctx).Order("created_at_ms desc").Find(&rows).Error
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	out := make([]vaultcore.VaultRef, len(rows))
	for i, row := range rows {
		out[i] = row.toRef()
	}
	// Defensive re-sort: SQLite's ORDER BY already guarantees this, but the
	// contract in spec.md §4.6 is load-bearing enough to assert directly.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAtMs > out[j].CreatedAtMs
	})
	return out, nil
}

func (s *Store) IDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&vaultRefRow{}).Pluck("id", &ids).Error
	if err != nil {
		return nil, vaulterrors.Wrap(vaulterrors.KindStorageFailure, err)
	}
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}
