package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/luxe-storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists entries in the storage_entries table through GORM.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	if err := validateScope(visitorID, key); err != nil {
		return nil, err
	}
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).
		Where("visitor_id = ? AND entry_key = ?", visitorID, key).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load entry %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *SQLStore) Set(ctx context.Context, visitorID, key string, value []byte) error {
	if err := validateScope(visitorID, key); err != nil {
		return err
	}
	entry := models.StorageEntry{VisitorID: visitorID, EntryKey: key, Value: string(value)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "visitor_id"}, {Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save entry %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, visitorID, key string) error {
	if err := validateScope(visitorID, key); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Where("visitor_id = ? AND entry_key = ?", visitorID, key).
		Delete(&models.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
