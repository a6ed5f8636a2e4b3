package store

import (
	"context"

	"lapor/internal/model"
)

// ChangeKind is the kind of a realtime change event.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// ProfileEvent is a realtime change notification for the profiles table.
// For DELETE events only Row.ID is guaranteed to be populated.
type ProfileEvent struct {
	Kind ChangeKind `json:"kind"`
	Row  model.User `json:"row"`
}

// ReportEvent is a realtime change notification for the reports table.
// For DELETE events only Row.ID is guaranteed to be populated.
type ReportEvent struct {
	Kind ChangeKind   `json:"kind"`
	Row  model.Report `json:"row"`
}

// Client is the capability surface of the external managed backend:
// per-table select/insert/update/delete plus a realtime change
// subscription per table. The synchronization engine is its only
// consumer.
type Client interface {
	SelectProfiles(ctx context.Context) ([]model.User, error)
	InsertProfile(ctx context.Context, user *model.User) error
	UpdateProfile(ctx context.Context, id string, patch model.UserPatch) error
	DeleteProfile(ctx context.Context, id string) error

	SelectReports(ctx context.Context) ([]model.Report, error)
	InsertReport(ctx context.Context, report *model.Report) error
	UpdateReport(ctx context.Context, id string, patch model.ReviewPatch) error
	DeleteReport(ctx context.Context, id string) error
	// DeleteReportsByUser removes every report owned by userID. Hard
	// user deletion depends on this completing before the profile row
	// is removed.
	DeleteReportsByUser(ctx context.Context, userID string) error

	SubscribeProfileChanges(ctx context.Context, fn func(ProfileEvent)) error
	SubscribeReportChanges(ctx context.Context, fn func(ReportEvent)) error

	Close() error
}
