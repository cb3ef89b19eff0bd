package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot is one row per collection in the snapshots table
type Snapshot struct {
	Collection string    `gorm:"primaryKey;size:64"`
	Payload    []byte    `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// GormStore keeps snapshots in a SQL table through GORM
type GormStore struct {
	db *gorm.DB
}

var _ SnapshotStore = (*GormStore)(nil)

// NewGormStore migrates the snapshots table and returns the store
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load(ctx context.Context, name string) ([]byte, error) {
	var snap Snapshot
	err := s.db.WithContext(ctx).Where("collection = ?", name).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", name, err)
	}
	return snap.Payload, nil
}

func (s *GormStore) Save(ctx context.Context, name string, data []byte) error {
	snap := Snapshot{Collection: name, Payload: data, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", name, err)
	}
	return nil
}
