package models

import (
	"time"
)

// OwnedRecord represents a record in a user's owned catalog. NormalizedKey is
// computed at write time with the same normalizer the matcher uses, so both
// sides of a comparison stay comparable.
type OwnedRecord struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID          string    `gorm:"not null;index;size:64" json:"owner_id"`
	Artist           string    `gorm:"not null" json:"artist"`
	Title            string    `gorm:"not null" json:"title"`
	NormalizedKey    string    `gorm:"index" json:"normalized_key"`
	Format           string    `json:"format"`
	DiscogsReleaseID int       `json:"discogs_release_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PlaylistJob tracks one playlist processing run
type PlaylistJob struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID         string    `gorm:"unique;not null;size:36" json:"job_id"`
	OwnerID       string    `gorm:"not null;index;size:64" json:"owner_id"`
	PlaylistURL   string    `gorm:"not null" json:"playlist_url"`
	Status        string    `gorm:"size:20" json:"status"` // "running", "completed", "failed"
	TrackCount    int       `json:"track_count"`
	MatchedCount  int       `json:"matched_count"`
	ReviewCount   int       `json:"review_count"`
	WriteFailures int       `json:"write_failures"` // tracks that could not be persisted
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProcessedTrack is one playlist video after extraction and catalog matching.
// OwnedRecordID is nil exactly when Confidence is 0.
type ProcessedTrack struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID         string    `gorm:"not null;index;size:36" json:"job_id"`
	OwnerID       string    `gorm:"not null;index;size:64" json:"owner_id"`
	VideoID       string    `gorm:"size:32" json:"video_id"`
	RawTitle      string    `gorm:"not null" json:"raw_title"`
	Artist        string    `json:"artist"`
	Title         string    `gorm:"not null" json:"title"`
	Remix         string    `json:"remix"`
	OwnedRecordID *uint     `gorm:"index" json:"owned_record_id"`
	Confidence    int       `json:"confidence"`            // 0-100
	Status        string    `gorm:"size:20" json:"status"` // "matched", "needs_review", "unmatched", "corrected"
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TrackListing is a marketplace offer persisted for a processed track. One row
// per provider per aggregation run; Available is true only when a concrete
// price or format was resolved.
type TrackListing struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackID           uint      `gorm:"not null;index" json:"track_id"`
	ProviderName      string    `gorm:"not null;size:32" json:"provider_name"`
	URL               string    `json:"url"`
	Price             string    `gorm:"size:32" json:"price"`
	ConditionOrFormat string    `gorm:"size:64" json:"condition_or_format"`
	Available         bool      `json:"available"`
	CreatedAt         time.Time `json:"created_at"`
}
