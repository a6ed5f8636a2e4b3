package service

import (
	"context"
	"encoding/json"
	"time"

	"lapor/internal/cache"
	"lapor/internal/engine"
	errs "lapor/internal/errors"
	"lapor/internal/geo"
	"lapor/internal/model"
)

const (
	statsCacheKey = "report:stats"
	statsCacheTTL = 30 * time.Second
)

// ReportFilter narrows a report listing. Zero values match everything.
type ReportFilter struct {
	Status   model.ReportStatus
	Category model.ReportCategory
	UserID   string
	From     time.Time
	To       time.Time
}

// UserReportStats is a per-officer report tally.
type UserReportStats struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// ReportStats aggregates the reports snapshot.
type ReportStats struct {
	Total      int                          `json:"total"`
	Pending    int                          `json:"pending"`
	Accepted   int                          `json:"accepted"`
	Rejected   int                          `json:"rejected"`
	ByCategory map[model.ReportCategory]int `json:"by_category"`
	ByUser     map[string]UserReportStats   `json:"by_user"`
}

// ReportService exposes report operations over the engine.
type ReportService interface {
	Submit(ctx context.Context, actor *model.User, draft model.ReportDraft, replaceID string) (model.Report, error)
	Review(ctx context.Context, actor *model.User, id string, status model.ReportStatus, feedback string) error
	List(ctx context.Context, filter ReportFilter) []model.Report
	Get(ctx context.Context, id string) (model.Report, error)
	Stats(ctx context.Context) (ReportStats, error)
}

type reportService struct {
	engine   *engine.Engine
	cache    *cache.Client
	geocoder geo.ReverseGeocoder
}

// NewReportService creates a report service over the engine.
func NewReportService(eng *engine.Engine, cache *cache.Client, geocoder geo.ReverseGeocoder) ReportService {
	return &reportService{engine: eng, cache: cache, geocoder: geocoder}
}

// Submit validates the draft, resolves a missing location from the
// draft coordinates, and hands the report to the engine.
func (s *reportService) Submit(ctx context.Context, actor *model.User, draft model.ReportDraft, replaceID string) (model.Report, error) {
	if !draft.Category.Valid() {
		return model.Report{}, errs.ErrInvalidCategory
	}
	if draft.Location == "" && draft.Coordinates != nil {
		draft.Location = geo.Resolve(ctx, s.geocoder, *draft.Coordinates)
	}

	report, err := s.engine.SubmitReport(ctx, actor, draft, replaceID)
	if err != nil {
		return model.Report{}, err
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return report, nil
}

// Review applies an admin review outcome. A rejection without
// feedback is refused here, before any state mutation.
func (s *reportService) Review(ctx context.Context, actor *model.User, id string, status model.ReportStatus, feedback string) error {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return errs.ErrInvalidStatus
	}
	if status == model.StatusRejected && feedback == "" {
		return errs.ErrFeedbackRequired
	}
	if _, ok := s.engine.ReportByID(id); !ok {
		return errs.ErrReportNotFound
	}
	if err := s.engine.ReviewReport(ctx, actor, id, status, feedback); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}

// List returns the reports matching filter, newest first.
func (s *reportService) List(ctx context.Context, filter ReportFilter) []model.Report {
	var out []model.Report
	for _, r := range s.engine.Reports() {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if !filter.From.IsZero() && r.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.CreatedAt.After(filter.To) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Get returns a single report by id.
func (s *reportService) Get(ctx context.Context, id string) (model.Report, error) {
	report, ok := s.engine.ReportByID(id)
	if !ok {
		return model.Report{}, errs.ErrReportNotFound
	}
	return report, nil
}

// Stats aggregates the reports snapshot, with a short-lived cache in
// front of the scan.
func (s *reportService) Stats(ctx context.Context) (ReportStats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached ReportStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	stats := ReportStats{
		ByCategory: make(map[model.ReportCategory]int),
		ByUser:     make(map[string]UserReportStats),
	}
	for _, cat := range model.Categories() {
		stats.ByCategory[cat] = 0
	}
	for _, r := range s.engine.Reports() {
		stats.Total++
		switch r.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusAccepted:
			stats.Accepted++
		case model.StatusRejected:
			stats.Rejected++
		}
		stats.ByCategory[r.Category]++

		u := stats.ByUser[r.UserID]
		u.Total++
		if r.Status == model.StatusAccepted {
			u.Accepted++
		}
		if r.Status == model.StatusRejected {
			u.Rejected++
		}
		stats.ByUser[r.UserID] = u
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}
