package controllers

import (
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

// timeOfDayRegex matches a 24-hour "HH:MM" clock time.
var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"` // YYYY-MM-DD
	EndDate     string   `json:"end_date"`   // YYYY-MM-DD
	StartTime   *string  `json:"start_time"` // HH:MM, optional
	EndTime     *string  `json:"end_time"`   // HH:MM, optional
	MaxCapacity *int     `json:"max_capacity"`
	Price       *float64 `json:"price"`
	Status      string   `json:"status"` // optional, defaults to UPCOMING
	VenueID     string   `json:"venue_id"`
	CategoryID  string   `json:"category_id"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.StartDate == "" {
		errs = append(errs, "start_date is required")
	} else if _, err := time.Parse("2006-01-02", c.StartDate); err != nil {
		errs = append(errs, "start_date must be YYYY-MM-DD")
	}
	if c.EndDate == "" {
		errs = append(errs, "end_date is required")
	} else if _, err := time.Parse("2006-01-02", c.EndDate); err != nil {
		errs = append(errs, "end_date must be YYYY-MM-DD")
	}
	if c.StartTime != nil && !timeOfDayRegex.MatchString(*c.StartTime) {
		errs = append(errs, "start_time must be HH:MM")
	}
	if c.EndTime != nil && !timeOfDayRegex.MatchString(*c.EndTime) {
		errs = append(errs, "end_time must be HH:MM")
	}
	if c.MaxCapacity != nil && *c.MaxCapacity < 0 {
		errs = append(errs, "max_capacity must be non-negative")
	}
	if c.Price != nil && *c.Price < 0 {
		errs = append(errs, "price must be non-negative")
	}
	if c.VenueID == "" {
		errs = append(errs, "venue_id is required")
	} else if !uuidRegex.MatchString(c.VenueID) {
		errs = append(errs, "venue_id must be a valid UUID")
	}
	if c.CategoryID == "" {
		errs = append(errs, "category_id is required")
	} else if !uuidRegex.MatchString(c.CategoryID) {
		errs = append(errs, "category_id must be a valid UUID")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}.
// All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	StartTime   *string  `json:"start_time"`
	EndTime     *string  `json:"end_time"`
	MaxCapacity *int     `json:"max_capacity"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
	VenueID     *string  `json:"venue_id"`
	CategoryID  *string  `json:"category_id"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.StartDate != nil {
		if _, err := time.Parse("2006-01-02", *u.StartDate); err != nil {
			errs = append(errs, "start_date must be YYYY-MM-DD")
		}
	}
	if u.EndDate != nil {
		if _, err := time.Parse("2006-01-02", *u.EndDate); err != nil {
			errs = append(errs, "end_date must be YYYY-MM-DD")
		}
	}
	if u.StartTime != nil && *u.StartTime != "" && !timeOfDayRegex.MatchString(*u.StartTime) {
		errs = append(errs, "start_time must be HH:MM")
	}
	if u.EndTime != nil && *u.EndTime != "" && !timeOfDayRegex.MatchString(*u.EndTime) {
		errs = append(errs, "end_time must be HH:MM")
	}
	if u.MaxCapacity != nil && *u.MaxCapacity < 0 {
		errs = append(errs, "max_capacity must be non-negative")
	}
	if u.Price != nil && *u.Price < 0 {
		errs = append(errs, "price must be non-negative")
	}
	if u.VenueID != nil && !uuidRegex.MatchString(*u.VenueID) {
		errs = append(errs, "venue_id must be a valid UUID")
	}
	if u.CategoryID != nil && !uuidRegex.MatchString(*u.CategoryID) {
		errs = append(errs, "category_id must be a valid UUID")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.EventWithStats `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data       []*domain.EventWithStats `json:"data"`
	Error      *helpers.APIError        `json:"error"`
	Pagination *helpers.PaginationMeta  `json:"pagination"`
}

// MostPopularEventsSuccessResponse is the success response envelope for
// GET /reports/most-popular-events (200).
type MostPopularEventsSuccessResponse struct {
	Data  []*domain.EventPopularity `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /events/{eventID} (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event
// @Description Creates an event in the referenced venue and category. Status defaults to UPCOMING. A zero or omitted max_capacity means unlimited seats; a zero or omitted price makes the event free.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (venue or category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxCapacity: req.MaxCapacity,
		Status:      domain.EventStatus(strings.ToUpper(req.Status)),
		VenueID:     req.VenueID,
		CategoryID:  req.CategoryID,
	}
	event.StartDate, _ = time.Parse("2006-01-02", req.StartDate)
	event.EndDate, _ = time.Parse("2006-01-02", req.EndDate)
	if req.Price != nil {
		event.Price = *req.Price
	}
	if err := c.Service.Create(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetByID godoc
// @Summary Get an event by ID
// @Description Returns the event with its confirmed enrollment count and remaining seats (null when capacity is unlimited).
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event with stats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a valid UUID")
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Updates event fields. Omitted fields are unchanged. Changing status to CANCELLED or COMPLETED closes the event to new enrollments but does not touch existing ones.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.CreateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a valid UUID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	current, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	event := current.Event
	applyEventUpdate(event, req)
	if err := c.Service.Update(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

func applyEventUpdate(event *domain.Event, req UpdateEventRequest) {
	if req.Name != nil {
		event.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate, _ = time.Parse("2006-01-02", *req.StartDate)
	}
	if req.EndDate != nil {
		event.EndDate, _ = time.Parse("2006-01-02", *req.EndDate)
	}
	if req.StartTime != nil {
		if *req.StartTime == "" {
			event.StartTime = nil
		} else {
			event.StartTime = req.StartTime
		}
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			event.EndTime = nil
		} else {
			event.EndTime = req.EndTime
		}
	}
	if req.MaxCapacity != nil {
		event.MaxCapacity = req.MaxCapacity
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Status != nil {
		event.Status = domain.EventStatus(strings.ToUpper(*req.Status))
	}
	if req.VenueID != nil {
		event.VenueID = *req.VenueID
	}
	if req.CategoryID != nil {
		event.CategoryID = *req.CategoryID
	}
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an event. Fails with 409 conflict while the event holds confirmed enrollments.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (confirmed enrollments exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a valid UUID")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrInUse) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}

// Search godoc
// @Summary List events
// @Description Returns a paginated list of events with confirmed enrollment counts and remaining seats. Optional filters combine conjunctively: category_id, venue_id, status, start_from, end_until (RFC 3339), max_price.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param category_id query string false "Filter by category ID (UUID)"
// @Param venue_id query string false "Filter by venue ID (UUID)"
// @Param status query string false "Filter by status (UPCOMING, ACTIVE, CANCELLED, COMPLETED)"
// @Param start_from query string false "Only events starting at or after this time (RFC 3339)"
// @Param end_until query string false "Only events ending at or before this time (RFC 3339)"
// @Param max_price query number false "Only events priced at or below this value"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort field (name, start_date, price, created_at)"
// @Param sort_dir query string false "Sort direction (asc or desc, default asc)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data is an array of events with stats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) Search(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseEventFilter(w, r)
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
		list = []*domain.EventWithStats{}
	}
	helpers.WriteJSONPage(w, list, helpers.NewPaginationMeta(params, total))
}

// MostPopular godoc
// @Summary Most popular events
// @Description Returns events ranked by confirmed enrollment count, descending. limit defaults to 10, max 100.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows to return (default 10, max 100)"
// @Success 200 {object} controllers.MostPopularEventsSuccessResponse "data is an array of event popularity rows"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reports/most-popular-events [get]
func (c *EventController) MostPopular(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)
	rows, err := c.Service.MostPopular(r.Context(), limit)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if rows == nil {
		rows = []*domain.EventPopularity{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// parseEventFilter reads the event filter query params. On a malformed param it
// writes a 400 error and returns ok=false.
func parseEventFilter(w http.ResponseWriter, r *http.Request) (domain.EventFilter, bool) {
	q := r.URL.Query()
	var f domain.EventFilter

	if v := q.Get("category_id"); v != "" {
		if !uuidRegex.MatchString(v) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "category_id must be a valid UUID")
			return f, false
		}
		f.CategoryID = v
	}
	if v := q.Get("venue_id"); v != "" {
		if !uuidRegex.MatchString(v) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venue_id must be a valid UUID")
			return f, false
		}
		f.VenueID = v
	}
	if v := q.Get("status"); v != "" {
		f.Status = domain.EventStatus(strings.ToUpper(v))
	}
	var ok bool
	if f.StartFrom, ok = parseTimeParam(w, q.Get("start_from"), "start_from"); !ok {
		return f, false
	}
	if f.EndUntil, ok = parseTimeParam(w, q.Get("end_until"), "end_until"); !ok {
		return f, false
	}
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "max_price must be a non-negative number")
			return f, false
		}
		f.MaxPrice = &p
	}
	return f, true
}
