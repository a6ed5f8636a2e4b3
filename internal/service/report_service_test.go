package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapor/internal/engine"
	errs "lapor/internal/errors"
	"lapor/internal/model"
	"lapor/internal/notify"
	"lapor/internal/store"
)

// fakeStore is a read-only store.Client seeding the engine for service
// tests. Writes succeed silently.
type fakeStore struct {
	users   []model.User
	reports []model.Report
}

func (f *fakeStore) SelectProfiles(ctx context.Context) ([]model.User, error) {
	return f.users, nil
}
func (f *fakeStore) InsertProfile(ctx context.Context, user *model.User) error { return nil }
func (f *fakeStore) UpdateProfile(ctx context.Context, id string, patch model.UserPatch) error {
	return nil
}
func (f *fakeStore) DeleteProfile(ctx context.Context, id string) error { return nil }
func (f *fakeStore) SelectReports(ctx context.Context) ([]model.Report, error) {
	return f.reports, nil
}
func (f *fakeStore) InsertReport(ctx context.Context, report *model.Report) error { return nil }
func (f *fakeStore) UpdateReport(ctx context.Context, id string, patch model.ReviewPatch) error {
	return nil
}
func (f *fakeStore) DeleteReport(ctx context.Context, id string) error { return nil }
func (f *fakeStore) DeleteReportsByUser(ctx context.Context, userID string) error { return nil }
func (f *fakeStore) SubscribeProfileChanges(ctx context.Context, fn func(store.ProfileEvent)) error {
	return nil
}
func (f *fakeStore) SubscribeReportChanges(ctx context.Context, fn func(store.ReportEvent)) error {
	return nil
}
func (f *fakeStore) Close() error { return nil }

type stubGeocoder struct {
	addr string
	err  error
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, c model.Coordinates) (string, error) {
	return s.addr, s.err
}

var serviceBase = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func serviceUsers() []model.User {
	return []model.User{
		{ID: "u1", PJLPNumber: "50422231", Name: "Annas Rizky", Role: model.RolePetugas, IsActive: true},
		{ID: "u2", PJLPNumber: "50422232", Name: "Annaufal Arifa", Role: model.RolePetugas, IsActive: true},
		{ID: "a1", PJLPNumber: "admin", Name: "Admin Kelurahan", Role: model.RoleAdmin, IsActive: true},
	}
}

func serviceReports() []model.Report {
	return []model.Report{
		{ID: "r1", UserID: "u1", UserName: "Annas Rizky", Category: model.CategoryKebersihan, Description: "Sampah liar", Status: model.StatusPending, CreatedAt: serviceBase},
		{ID: "r2", UserID: "u2", UserName: "Annaufal Arifa", Category: model.CategoryKerusakan, Description: "Trotoar amblas", Status: model.StatusAccepted, CreatedAt: serviceBase.Add(24 * time.Hour)},
		{ID: "r3", UserID: "u1", UserName: "Annas Rizky", Category: model.CategorySaluran, Description: "Got mampet", Status: model.StatusRejected, Feedback: "Foto kurang jelas", CreatedAt: serviceBase.Add(48 * time.Hour)},
		{ID: "r4", UserID: "u2", UserName: "Annaufal Arifa", Category: model.CategoryKebersihan, Description: "Daun berserakan", Status: model.StatusAccepted, CreatedAt: serviceBase.Add(72 * time.Hour)},
	}
}

func newServiceEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(&fakeStore{users: serviceUsers(), reports: serviceReports()}, notify.NewQueue())
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(eng.Close)
	return eng
}

func TestReportService_SubmitInvalidCategory(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewReportService(eng, nil, nil)

	actor, _ := eng.UserByID("u1")
	_, err := svc.Submit(context.Background(), &actor, model.ReportDraft{
		Category:    "GEDUNG",
		Description: "kategori tidak dikenal",
		ImageURL:    "https://example.com/photo.jpg",
	}, "")
	assert.ErrorIs(t, err, errs.ErrInvalidCategory)
}

func TestReportService_SubmitResolvesLocation(t *testing.T) {
	coords := &model.Coordinates{Lat: -6.192513, Lng: 106.882713}
	tests := []struct {
		name     string
		geocoder *stubGeocoder
		wantLoc  string
	}{
		{
			name:     "geocoder result used",
			geocoder: &stubGeocoder{addr: "Jl. Pemuda No. 10, Rawamangun"},
			wantLoc:  "Jl. Pemuda No. 10, Rawamangun",
		},
		{
			name:     "geocoder failure falls back to raw coordinates",
			geocoder: &stubGeocoder{err: context.DeadlineExceeded},
			wantLoc:  "-6.192513, 106.882713",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newServiceEngine(t)
			svc := NewReportService(eng, nil, tt.geocoder)

			actor, _ := eng.UserByID("u1")
			rep, err := svc.Submit(context.Background(), &actor, model.ReportDraft{
				Category:    model.CategoryTaman,
				Description: "Pohon tumbang",
				ImageURL:    "https://example.com/photo.jpg",
				Coordinates: coords,
			}, "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLoc, rep.Location)
		})
	}
}

func TestReportService_SubmitKeepsExplicitLocation(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewReportService(eng, nil, &stubGeocoder{addr: "tidak dipakai"})

	actor, _ := eng.UserByID("u1")
	rep, err := svc.Submit(context.Background(), &actor, model.ReportDraft{
		Category:    model.CategoryTaman,
		Description: "Pohon tumbang",
		ImageURL:    "https://example.com/photo.jpg",
		Location:    "Taman Rawamangun",
		Coordinates: &model.Coordinates{Lat: -6.19, Lng: 106.88},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Taman Rawamangun", rep.Location)
}

func TestReportService_Review(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		status   model.ReportStatus
		feedback string
		wantErr  error
	}{
		{name: "accept", id: "r1", status: model.StatusAccepted},
		{name: "reject with feedback", id: "r1", status: model.StatusRejected, feedback: "Foto tidak jelas"},
		{name: "reject without feedback", id: "r1", status: model.StatusRejected, wantErr: errs.ErrFeedbackRequired},
		{name: "pending is not an outcome", id: "r1", status: model.StatusPending, wantErr: errs.ErrInvalidStatus},
		{name: "unknown report", id: "missing", status: model.StatusAccepted, wantErr: errs.ErrReportNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newServiceEngine(t)
			svc := NewReportService(eng, nil, nil)

			admin, _ := eng.UserByID("a1")
			err := svc.Review(context.Background(), &admin, tt.id, tt.status, tt.feedback)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			got, ok := eng.ReportByID(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.feedback, got.Feedback)
		})
	}
}

func TestReportService_List(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewReportService(eng, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  ReportFilter
		wantIDs []string
	}{
		{name: "no filter", filter: ReportFilter{}, wantIDs: []string{"r1", "r2", "r3", "r4"}},
		{name: "by status", filter: ReportFilter{Status: model.StatusAccepted}, wantIDs: []string{"r2", "r4"}},
		{name: "by category", filter: ReportFilter{Category: model.CategoryKebersihan}, wantIDs: []string{"r1", "r4"}},
		{name: "by owner", filter: ReportFilter{UserID: "u1"}, wantIDs: []string{"r1", "r3"}},
		{name: "from cutoff", filter: ReportFilter{From: serviceBase.Add(36 * time.Hour)}, wantIDs: []string{"r3", "r4"}},
		{name: "to cutoff", filter: ReportFilter{To: serviceBase.Add(12 * time.Hour)}, wantIDs: []string{"r1"}},
		{name: "owner and status", filter: ReportFilter{UserID: "u2", Status: model.StatusAccepted}, wantIDs: []string{"r2", "r4"}},
		{name: "nothing matches", filter: ReportFilter{Category: model.CategoryLainnya}, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.List(ctx, tt.filter)
			var ids []string
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestReportService_Get(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewReportService(eng, nil, nil)

	rep, err := svc.Get(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, rep.Status)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, errs.ErrReportNotFound)
}

func TestReportService_Stats(t *testing.T) {
	eng := newServiceEngine(t)
	svc := NewReportService(eng, nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected)

	assert.Equal(t, 2, stats.ByCategory[model.CategoryKebersihan])
	assert.Equal(t, 1, stats.ByCategory[model.CategoryKerusakan])
	assert.Equal(t, 1, stats.ByCategory[model.CategorySaluran])
	assert.Equal(t, 0, stats.ByCategory[model.CategoryTaman])
	assert.Equal(t, 0, stats.ByCategory[model.CategoryLainnya])

	assert.Equal(t, UserReportStats{Total: 2, Accepted: 0, Rejected: 1}, stats.ByUser["u1"])
	assert.Equal(t, UserReportStats{Total: 2, Accepted: 2, Rejected: 0}, stats.ByUser["u2"])
}
