package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapor/internal/auth"
	"lapor/internal/config"
	"lapor/internal/engine"
	"lapor/internal/handler"
	"lapor/internal/model"
	"lapor/internal/notify"
	"lapor/internal/service"
	"lapor/internal/store"
)

// memoryStore seeds the engine for full-stack route tests. Writes
// succeed silently.
type memoryStore struct {
	users   []model.User
	reports []model.Report
}

func (m *memoryStore) SelectProfiles(ctx context.Context) ([]model.User, error) {
	return m.users, nil
}
func (m *memoryStore) InsertProfile(ctx context.Context, user *model.User) error { return nil }
func (m *memoryStore) UpdateProfile(ctx context.Context, id string, patch model.UserPatch) error {
	return nil
}
func (m *memoryStore) DeleteProfile(ctx context.Context, id string) error { return nil }
func (m *memoryStore) SelectReports(ctx context.Context) ([]model.Report, error) {
	return m.reports, nil
}
func (m *memoryStore) InsertReport(ctx context.Context, report *model.Report) error { return nil }
func (m *memoryStore) UpdateReport(ctx context.Context, id string, patch model.ReviewPatch) error {
	return nil
}
func (m *memoryStore) DeleteReport(ctx context.Context, id string) error { return nil }
func (m *memoryStore) DeleteReportsByUser(ctx context.Context, userID string) error {
	return nil
}
func (m *memoryStore) SubscribeProfileChanges(ctx context.Context, fn func(store.ProfileEvent)) error {
	return nil
}
func (m *memoryStore) SubscribeReportChanges(ctx context.Context, fn func(store.ReportEvent)) error {
	return nil
}
func (m *memoryStore) Close() error { return nil }

func newTestServer(t *testing.T) (*echo.Echo, *auth.JWTService, *engine.Engine) {
	t.Helper()

	st := &memoryStore{
		users: []model.User{
			{ID: "u1", PJLPNumber: "50422231", Name: "Annas Rizky", Role: model.RolePetugas, IsActive: true},
			{ID: "u2", PJLPNumber: "50422232", Name: "Annaufal Arifa", Role: model.RolePetugas, IsActive: true},
			{ID: "a1", PJLPNumber: "admin", Name: "Admin Kelurahan", Role: model.RoleAdmin, IsActive: true},
		},
		reports: []model.Report{
			{ID: "r1", UserID: "u1", UserName: "Annas Rizky", Category: model.CategoryKebersihan, Description: "Sampah liar", Status: model.StatusPending, CreatedAt: time.Now()},
		},
	}

	cfg := &config.Config{JWTSecret: "test-secret"}
	queue := notify.NewQueue()
	eng := engine.New(st, queue)
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(eng.Close)

	presenter := notify.NewPresenter(queue, notify.DefaultDisplayWindow)
	t.Cleanup(presenter.Stop)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(nil)
	gate := auth.NewGate(eng)

	authService := service.NewAuthService(gate, jwtService, tokenStore)
	reportService := service.NewReportService(eng, nil, nil)
	userService := service.NewUserService(eng, gate)
	notificationService := service.NewNotificationService(queue, presenter)

	actors := handler.NewActorResolver(eng)
	e := echo.New()
	Register(e, cfg,
		handler.NewAuthHandler(authService),
		handler.NewReportHandler(reportService, actors),
		handler.NewUserHandler(userService, actors),
		handler.NewNotificationHandler(notificationService, actors),
	)
	return e, jwtService, eng
}

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSecuredRoutes_BearerTokenAccepted(t *testing.T) {
	e, jwtService, _ := newTestServer(t)

	token, err := jwtService.GenerateAccessToken("u1", model.RolePetugas)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/api/reports", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecuredRoutes_MissingTokenRejected(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/reports", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSecuredRoutes_BadSignatureRejected(t *testing.T) {
	e, _, _ := newTestServer(t)

	forged := auth.NewJWTService("other-secret")
	token, err := forged.GenerateAccessToken("u1", model.RolePetugas)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodGet, "/api/reports", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserRoutes_OfficerCannotPromoteSelf(t *testing.T) {
	e, jwtService, eng := newTestServer(t)

	token, err := jwtService.GenerateAccessToken("u1", model.RolePetugas)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodPut, "/api/users/u1", token, `{"role":"ADMIN"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	got, ok := eng.UserByID("u1")
	require.True(t, ok)
	assert.Equal(t, model.RolePetugas, got.Role)
}

func TestUserRoutes_OfficerCannotEditOtherProfile(t *testing.T) {
	e, jwtService, eng := newTestServer(t)

	token, err := jwtService.GenerateAccessToken("u1", model.RolePetugas)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodPut, "/api/users/u2", token, `{"name":"Diambil Alih"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	got, ok := eng.UserByID("u2")
	require.True(t, ok)
	assert.Equal(t, "Annaufal Arifa", got.Name)
}

func TestUserRoutes_OfficerCanEditOwnProfile(t *testing.T) {
	e, jwtService, eng := newTestServer(t)

	token, err := jwtService.GenerateAccessToken("u1", model.RolePetugas)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodPut, "/api/users/u1", token, `{"phone":"081200001111"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, _ := eng.UserByID("u1")
	assert.Equal(t, "081200001111", got.Phone)
}

func TestUserRoutes_AdminCanEditAnyProfile(t *testing.T) {
	e, jwtService, eng := newTestServer(t)

	token, err := jwtService.GenerateAccessToken("a1", model.RoleAdmin)
	require.NoError(t, err)

	rec := doRequest(e, http.MethodPut, "/api/users/u1", token, `{"is_active":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, _ := eng.UserByID("u1")
	assert.False(t, got.IsActive)
}

func TestReviewRoute_RequiresAdminRole(t *testing.T) {
	e, jwtService, eng := newTestServer(t)

	officerToken, err := jwtService.GenerateAccessToken("u1", model.RolePetugas)
	require.NoError(t, err)
	rec := doRequest(e, http.MethodPut, "/api/reports/r1/review", officerToken, `{"status":"ACCEPTED"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := jwtService.GenerateAccessToken("a1", model.RoleAdmin)
	require.NoError(t, err)
	rec = doRequest(e, http.MethodPut, "/api/reports/r1/review", adminToken, `{"status":"ACCEPTED"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, _ := eng.ReportByID("r1")
	assert.Equal(t, model.StatusAccepted, got.Status)
}
