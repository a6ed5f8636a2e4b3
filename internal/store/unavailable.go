package store

import (
	"context"
	"errors"

	"lapor/internal/model"
)

// ErrUnavailable is returned by Unavailable for every operation.
var ErrUnavailable = errors.New("remote store unavailable")

// Unavailable is a store client that fails every call. Wiring it into
// the engine forces the offline fallback path when the backend could
// not be reached at startup.
type Unavailable struct{}

var _ Client = Unavailable{}

func (Unavailable) SelectProfiles(context.Context) ([]model.User, error) {
	return nil, ErrUnavailable
}

func (Unavailable) InsertProfile(context.Context, *model.User) error { return ErrUnavailable }

func (Unavailable) UpdateProfile(context.Context, string, model.UserPatch) error {
	return ErrUnavailable
}

func (Unavailable) DeleteProfile(context.Context, string) error { return ErrUnavailable }

func (Unavailable) SelectReports(context.Context) ([]model.Report, error) {
	return nil, ErrUnavailable
}

func (Unavailable) InsertReport(context.Context, *model.Report) error { return ErrUnavailable }

func (Unavailable) UpdateReport(context.Context, string, model.ReviewPatch) error {
	return ErrUnavailable
}

func (Unavailable) DeleteReport(context.Context, string) error { return ErrUnavailable }

func (Unavailable) DeleteReportsByUser(context.Context, string) error { return ErrUnavailable }

func (Unavailable) SubscribeProfileChanges(context.Context, func(ProfileEvent)) error {
	return ErrUnavailable
}

func (Unavailable) SubscribeReportChanges(context.Context, func(ReportEvent)) error {
	return ErrUnavailable
}

func (Unavailable) Close() error { return nil }
