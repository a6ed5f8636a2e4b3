package model

import "time"

// ReportStatus tracks the review state of a report. The only legal
// transitions are PENDING to ACCEPTED or REJECTED via an explicit
// admin review; a rejected report is superseded by a brand-new one,
// never flipped back to PENDING in place.
type ReportStatus string

const (
	StatusPending  ReportStatus = "PENDING"
	StatusAccepted ReportStatus = "ACCEPTED"
	StatusRejected ReportStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ReportCategory is the closed set of work categories.
type ReportCategory string

const (
	CategoryKebersihan ReportCategory = "KEBERSIHAN"
	CategoryKerusakan  ReportCategory = "KERUSAKAN"
	CategoryTaman      ReportCategory = "TAMAN"
	CategorySaluran    ReportCategory = "SALURAN"
	CategoryLainnya    ReportCategory = "LAINNYA"
)

// Categories lists every report category.
func Categories() []ReportCategory {
	return []ReportCategory{
		CategoryKebersihan,
		CategoryKerusakan,
		CategoryTaman,
		CategorySaluran,
		CategoryLainnya,
	}
}

// Valid reports whether c is a known category.
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryKebersihan, CategoryKerusakan, CategoryTaman, CategorySaluran, CategoryLainnya:
		return true
	}
	return false
}

// Coordinates is a latitude/longitude pair from the device locator or
// the map widget pin.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Report is a photo-evidenced unit of field work with a review status.
// UserName is denormalized at creation time and deliberately not kept
// in sync with later profile renames.
type Report struct {
	ID          string         `json:"id" gorm:"primaryKey;size:64"`
	UserID      string         `json:"user_id" gorm:"size:64;not null;index"`
	UserName    string         `json:"user_name" gorm:"size:255;not null"`
	Category    ReportCategory `json:"category" gorm:"size:32;not null;index"`
	Description string         `json:"description" gorm:"type:text;not null"`
	ImageURL    string         `json:"image_url" gorm:"type:text;not null"`
	Location    string         `json:"location" gorm:"size:512;not null"`
	Coordinates *Coordinates   `json:"coordinates,omitempty" gorm:"embedded;embeddedPrefix:coord_"`
	Status      ReportStatus   `json:"status" gorm:"size:32;not null;index"`
	Feedback    string         `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}

// TableName maps Report onto the external reports table.
func (Report) TableName() string { return "reports" }

// ReportDraft is the officer-provided part of a new report. Owner,
// status and timestamp are filled in by the engine at submission.
type ReportDraft struct {
	Category    ReportCategory `json:"category"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Location    string         `json:"location"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
}

// ReviewPatch is the admin review outcome written onto a report.
type ReviewPatch struct {
	Status   ReportStatus `json:"status"`
	Feedback string       `json:"feedback,omitempty"`
}
