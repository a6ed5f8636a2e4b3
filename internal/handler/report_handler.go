package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lapor/internal/errors"
	"lapor/internal/model"
	"lapor/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
	actors        *ActorResolver
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService, actors *ActorResolver) *ReportHandler {
	return &ReportHandler{reportService: reportService, actors: actors}
}

// CreateReportRequest represents a report submission. Location may be
// omitted when coordinates are supplied; it is then resolved by
// reverse geocoding. ReplaceID resubmits a rejected report.
type CreateReportRequest struct {
	Category    model.ReportCategory `json:"category" validate:"required,oneof=KEBERSIHAN KERUSAKAN TAMAN SALURAN LAINNYA"`
	Description string               `json:"description" validate:"required"`
	ImageURL    string               `json:"image_url" validate:"required"`
	Location    string               `json:"location"`
	Coordinates *model.Coordinates   `json:"coordinates,omitempty"`
	ReplaceID   string               `json:"replace_id,omitempty"`
}

// ReviewReportRequest represents an admin review outcome.
type ReviewReportRequest struct {
	Status   model.ReportStatus `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
	Feedback string             `json:"feedback" validate:"required_if=Status REJECTED"`
}

// Create godoc
// @Summary Submit a new work report
// @Tags reports
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report draft"
// @Success 201 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}

	var req CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Location == "" && req.Coordinates == nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "location or coordinates required",
			Code:  "LOCATION_REQUIRED",
		})
	}

	draft := model.ReportDraft{
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		Coordinates: req.Coordinates,
	}
	report, err := h.reportService.Submit(c.Request().Context(), actor, draft, req.ReplaceID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, report)
}

// Review godoc
// @Summary Accept or reject a pending report
// @Tags reports
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body ReviewReportRequest true "Review outcome"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id}/review [put]
func (h *ReportHandler) Review(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}

	var req ReviewReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.reportService.Review(c.Request().Context(), actor, c.Param("id"), req.Status, req.Feedback); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "report reviewed"})
}

// List godoc
// @Summary List reports, newest first
// @Tags reports
// @Produce json
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param user_id query string false "Filter by owner"
// @Param from query string false "Created after (RFC3339)"
// @Param to query string false "Created before (RFC3339)"
// @Success 200 {array} model.Report
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	if _, err := h.actors.FromContext(c); err != nil {
		return err
	}

	filter := service.ReportFilter{
		Status:   model.ReportStatus(c.QueryParam("status")),
		Category: model.ReportCategory(c.QueryParam("category")),
		UserID:   c.QueryParam("user_id"),
	}
	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = t
		}
	}

	return c.JSON(http.StatusOK, h.reportService.List(c.Request().Context(), filter))
}

// Get godoc
// @Summary Get a report by id
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} model.Report
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	if _, err := h.actors.FromContext(c); err != nil {
		return err
	}
	report, err := h.reportService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}

// Stats godoc
// @Summary Aggregate report statistics
// @Tags reports
// @Produce json
// @Success 200 {object} service.ReportStats
// @Security BearerAuth
// @Router /reports/stats [get]
func (h *ReportHandler) Stats(c echo.Context) error {
	if _, err := h.actors.FromContext(c); err != nil {
		return err
	}
	stats, err := h.reportService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
