package models

import "time"

// StorageEntry is one visitor-scoped value, e.g. the serialized cart under "luxeCart".
type StorageEntry struct {
	VisitorID string    `gorm:"column:visitor_id;primaryKey"`
	EntryKey  string    `gorm:"column:entry_key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
