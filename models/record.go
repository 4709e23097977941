package models

import "time"

// StoreRecord is one row of the date-keyed record store when the Postgres
// backend is selected. Value is the raw JSON payload; the record store
// adapter owns (de)serialization and never trusts the shape.
type StoreRecord struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time
}
