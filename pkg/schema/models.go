// Package schema provides the tables of the postgres target.
package schema

import (
	"time"
)

// ReportRecord is one cleaned or raw report row.
type ReportRecord struct {
	// ID is a UUID v5 of "<stream>|<record id>", so re-synced rows
	// overwrite themselves.
	ID string `gorm:"type:uuid;primaryKey"`

	// Stream is the stream id of the record.
	Stream string `gorm:"size:64;not null;index:idx_stream_record"`

	// RecordID is the composite identifier of cleaned records, zero for
	// schemaless rows.
	RecordID int64 `gorm:"not null;index:idx_stream_record"`

	// Data holds the record as JSON.
	Data []byte `gorm:"type:jsonb;not null"`

	// ExtractedAt is the time the row was read from the report.
	ExtractedAt time.Time `gorm:"index"`

	UpdatedAt time.Time
}

func (ReportRecord) TableName() string { return "report_records" }

// StreamSchema is the last declared schema of a stream.
type StreamSchema struct {
	Stream string `gorm:"size:64;primaryKey"`

	// Schema is the JSON schema of stream records.
	Schema []byte `gorm:"type:jsonb;not null"`

	// KeyProperties are comma separated key fields.
	KeyProperties string `gorm:"type:text"`

	UpdatedAt time.Time
}

func (StreamSchema) TableName() string { return "stream_schemas" }

// TapState is a persisted state snapshot.
type TapState struct {
	ID uint `gorm:"primaryKey"`

	// RunID groups snapshots of one sync run.
	RunID string `gorm:"type:uuid;index"`

	// State is the Singer state document.
	State []byte `gorm:"type:jsonb;not null"`

	CreatedAt time.Time `gorm:"index"`
}

func (TapState) TableName() string { return "tap_states" }
