package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// CreateEnrollmentRequest is the request body for POST /enrollments.
type CreateEnrollmentRequest struct {
	ParticipantID string `json:"participant_id"`
	EventID       string `json:"event_id"`
}

// Validate implements Validator.
func (c CreateEnrollmentRequest) Validate() []string {
	var errs []string
	if c.ParticipantID == "" {
		errs = append(errs, "participant_id is required")
	} else if !uuidRegex.MatchString(c.ParticipantID) {
		errs = append(errs, "participant_id must be a valid UUID")
	}
	if c.EventID == "" {
		errs = append(errs, "event_id is required")
	} else if !uuidRegex.MatchString(c.EventID) {
		errs = append(errs, "event_id must be a valid UUID")
	}
	return errs
}

// UpdateEnrollmentStatusRequest is the request body for PATCH /enrollments/{enrollmentID}/status.
type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateEnrollmentStatusRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	return nil
}

// EnrollmentSuccessResponse is the success response envelope for enrollment endpoints.
type EnrollmentSuccessResponse struct {
	Data  *domain.EnrollmentDetails `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// ListEnrollmentsSuccessResponse is the success response envelope for GET /enrollments (200).
type ListEnrollmentsSuccessResponse struct {
	Data       []*domain.EnrollmentDetails `json:"data"`
	Error      *helpers.APIError           `json:"error"`
	Pagination *helpers.PaginationMeta     `json:"pagination"`
}

// MostActiveParticipantsSuccessResponse is the success response envelope for
// GET /reports/most-active-participants (200).
type MostActiveParticipantsSuccessResponse struct {
	Data  []*domain.ParticipantActivity `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// DeleteEnrollmentResponse is the data payload for DELETE /enrollments/{enrollmentID} (200).
type DeleteEnrollmentResponse struct {
	Status string `json:"status"`
}

// DeleteEnrollmentSuccessResponse is the success response envelope for DELETE /enrollments/{enrollmentID} (200).
type DeleteEnrollmentSuccessResponse struct {
	Data  DeleteEnrollmentResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type EnrollmentController struct {
	Logger  *slog.Logger
	Service domain.EnrollmentService
}

func NewEnrollmentController(logger *slog.Logger, svc domain.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Enroll a participant in an event
// @Description Creates an enrollment after checking that both records exist, the participant is not already enrolled (any status counts), the event is open, and a seat is available. Enrollments in free events are confirmed immediately; paid events start as PENDING.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body CreateEnrollmentRequest true "Participant and event IDs"
// @Success 201 {object} controllers.EnrollmentSuccessResponse "data contains the created enrollment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (participant or event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already enrolled) or capacity_exceeded (event full)"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_operation (event cancelled or concluded)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments [post]
func (c *EnrollmentController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEnrollmentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details, err := c.Service.Create(r.Context(), req.ParticipantID, req.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
			return
		}
		if errors.Is(err, domain.ErrAlreadyEnrolled) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		if errors.Is(err, domain.ErrEventNotOpen) {
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeInvalidOperation, err.Error())
			return
		}
		if errors.Is(err, domain.ErrEventFull) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeCapacityExceeded, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, details)
}

// GetByID godoc
// @Summary Get an enrollment by ID
// @Description Returns the enrollment with participant and event names attached.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param enrollmentID path string true "Enrollment ID (UUID)"
// @Success 200 {object} controllers.EnrollmentSuccessResponse "data contains the enrollment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/{enrollmentID} [get]
func (c *EnrollmentController) GetByID(w http.ResponseWriter, r *http.Request) {
	enrollmentID := r.PathValue("enrollmentID")
	if !uuidRegex.MatchString(enrollmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "enrollmentID must be a valid UUID")
		return
	}
	details, err := c.Service.GetByID(r.Context(), enrollmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "enrollment not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// Confirm godoc
// @Summary Confirm a pending enrollment
// @Description Moves a PENDING enrollment to CONFIRMED. Confirming an already confirmed or cancelled enrollment fails with 409 invalid_transition.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param enrollmentID path string true "Enrollment ID (UUID)"
// @Success 200 {object} controllers.EnrollmentSuccessResponse "data contains the confirmed enrollment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/{enrollmentID}/confirm [post]
func (c *EnrollmentController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Confirm)
}

// Cancel godoc
// @Summary Cancel an enrollment
// @Description Moves a PENDING or CONFIRMED enrollment to CANCELLED. Cancelling an already cancelled enrollment fails with 409 invalid_transition. Cancellation is terminal; the participant cannot re-enroll in the same event.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param enrollmentID path string true "Enrollment ID (UUID)"
// @Success 200 {object} controllers.EnrollmentSuccessResponse "data contains the cancelled enrollment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/{enrollmentID}/cancel [post]
func (c *EnrollmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.Service.Cancel)
}

func (c *EnrollmentController) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*domain.EnrollmentDetails, error)) {
	enrollmentID := r.PathValue("enrollmentID")
	if !uuidRegex.MatchString(enrollmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "enrollmentID must be a valid UUID")
		return
	}
	details, err := op(r.Context(), enrollmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "enrollment not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidTransition, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// SetStatus godoc
// @Summary Set enrollment status (administrative)
// @Description Overwrites the enrollment status without transition checks. Requires the admin role.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollmentID path string true "Enrollment ID (UUID)"
// @Param body body UpdateEnrollmentStatusRequest true "New status (PENDING, CONFIRMED, or CANCELLED)"
// @Success 200 {object} controllers.EnrollmentSuccessResponse "data contains the updated enrollment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/{enrollmentID}/status [patch]
func (c *EnrollmentController) SetStatus(w http.ResponseWriter, r *http.Request) {
	enrollmentID := r.PathValue("enrollmentID")
	if !uuidRegex.MatchString(enrollmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "enrollmentID must be a valid UUID")
		return
	}
	var req UpdateEnrollmentStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	status := domain.EnrollmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	details, err := c.Service.SetStatus(r.Context(), enrollmentID, status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "enrollment not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// Delete godoc
// @Summary Delete an enrollment (administrative)
// @Description Removes the enrollment record entirely. Requires the admin role.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param enrollmentID path string true "Enrollment ID (UUID)"
// @Success 200 {object} controllers.DeleteEnrollmentSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments/{enrollmentID} [delete]
func (c *EnrollmentController) Delete(w http.ResponseWriter, r *http.Request) {
	enrollmentID := r.PathValue("enrollmentID")
	if !uuidRegex.MatchString(enrollmentID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "enrollmentID must be a valid UUID")
		return
	}
	if err := c.Service.Delete(r.Context(), enrollmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "enrollment not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEnrollmentResponse{Status: "deleted"})
}

// Search godoc
// @Summary List enrollments
// @Description Returns a paginated list of enrollments with participant and event names. Optional filters combine conjunctively: participant_id, event_id, status, created_from, created_until (RFC 3339).
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param participant_id query string false "Filter by participant ID (UUID)"
// @Param event_id query string false "Filter by event ID (UUID)"
// @Param status query string false "Filter by status (PENDING, CONFIRMED, CANCELLED)"
// @Param created_from query string false "Only enrollments created at or after this time (RFC 3339)"
// @Param created_until query string false "Only enrollments created at or before this time (RFC 3339)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort field (created_at, status)"
// @Param sort_dir query string false "Sort direction (asc or desc, default asc)"
// @Success 200 {object} controllers.ListEnrollmentsSuccessResponse "data is an array of enrollments"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /enrollments [get]
func (c *EnrollmentController) Search(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEnrollmentFilter(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.Search(r.Context(), filter, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if list == nil {
		list = []*domain.EnrollmentDetails{}
	}
	helpers.WriteJSONPage(w, list, helpers.NewPaginationMeta(params, total))
}

// MostActive godoc
// @Summary Most active participants
// @Description Returns participants ranked by confirmed enrollment count, descending. limit defaults to 10, max 100.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows to return (default 10, max 100)"
// @Success 200 {object} controllers.MostActiveParticipantsSuccessResponse "data is an array of participant activity rows"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/most-active-participants [get]
func (c *EnrollmentController) MostActive(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	rows, err := c.Service.MostActiveParticipants(r.Context(), limit)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if rows == nil {
		rows = []*domain.ParticipantActivity{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// parseEnrollmentFilter reads the enrollment filter query params. On a malformed
// param it writes a 400 error and returns ok=false.
func parseEnrollmentFilter(w http.ResponseWriter, r *http.Request) (domain.EnrollmentFilter, bool) {
	q := r.URL.Query()
	var f domain.EnrollmentFilter

	if v := q.Get("participant_id"); v != "" {
		if !uuidRegex.MatchString(v) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "participant_id must be a valid UUID")
			return f, false
		}
		f.ParticipantID = v
	}
	if v := q.Get("event_id"); v != "" {
		if !uuidRegex.MatchString(v) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event_id must be a valid UUID")
			return f, false
		}
		f.EventID = v
	}
	if v := q.Get("status"); v != "" {
		f.Status = domain.EnrollmentStatus(strings.ToUpper(v))
	}
	var ok bool
	if f.CreatedFrom, ok = parseTimeParam(w, q.Get("created_from"), "created_from"); !ok {
		return f, false
	}
	if f.CreatedUntil, ok = parseTimeParam(w, q.Get("created_until"), "created_until"); !ok {
		return f, false
	}
	return f, true
}

// parseTimeParam parses an optional RFC 3339 query param. On a malformed value
// it writes a 400 error and returns ok=false.
func parseTimeParam(w http.ResponseWriter, value, name string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, name+" must be an RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}

// parseLimit reads the optional limit query param; 0 means use the service default.
func parseLimit(r *http.Request) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return 0
}
