package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// RegisterParticipantRequest is the request body for POST /participants.
type RegisterParticipantRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (p RegisterParticipantRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(p.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	if p.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// UpdateParticipantRequest is the request body for PATCH /participants/{participantID}.
// All fields optional; omitted fields are unchanged. An empty password keeps the current one.
type UpdateParticipantRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// Validate implements Validator.
func (u UpdateParticipantRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Email != nil && !emailRegex.MatchString(strings.TrimSpace(*u.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// ParticipantSuccessResponse is the success response envelope for single-participant endpoints.
type ParticipantSuccessResponse struct {
	Data  *domain.Participant `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ParticipantWithStatsSuccessResponse is the success response envelope for GET /participants/{participantID} (200).
type ParticipantWithStatsSuccessResponse struct {
	Data  *domain.ParticipantWithStats `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// ListParticipantsSuccessResponse is the success response envelope for GET /participants (200).
type ListParticipantsSuccessResponse struct {
	Data       []*domain.Participant   `json:"data"`
	Error      *helpers.APIError       `json:"error"`
	Pagination *helpers.PaginationMeta `json:"pagination"`
}

// DeleteParticipantResponse is the data payload for DELETE /participants/{participantID} (200).
type DeleteParticipantResponse struct {
	Status string `json:"status"`
}

// DeleteParticipantSuccessResponse is the success response envelope for DELETE /participants/{participantID} (200).
type DeleteParticipantSuccessResponse struct {
	Data  DeleteParticipantResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a participant
// @Description Creates a participant account with the participant role. Email must be unique; password must be at least 8 characters.
// @Tags participants
// @Accept json
// @Produce json
// @Param participant body RegisterParticipantRequest true "Participant data"
// @Success 201 {object} controllers.ParticipantSuccessResponse "data contains the created participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants [post]
func (c *ParticipantController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participant, err := c.Service.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, participant)
}

// GetByID godoc
// @Summary Get a participant by ID
// @Description Returns the participant with total and confirmed enrollment counts.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} controllers.ParticipantWithStatsSuccessResponse "data contains the participant with stats"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{participantID} [get]
func (c *ParticipantController) GetByID(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantID")
	if !uuidRegex.MatchString(participantID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "participantID must be a valid UUID")
		return
	}
	participant, err := c.Service.GetByID(r.Context(), participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// Update godoc
// @Summary Update a participant
// @Description Updates participant fields. Omitted fields are unchanged; an omitted or empty password keeps the current one.
// @Tags participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Param body body UpdateParticipantRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.ParticipantSuccessResponse "data contains the updated participant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{participantID} [patch]
func (c *ParticipantController) Update(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantID")
	if !uuidRegex.MatchString(participantID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "participantID must be a valid UUID")
		return
	}
	var req UpdateParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var name, email, phone, password string
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Password != nil {
		password = *req.Password
	}
	participant, err := c.Service.Update(r.Context(), participantID, name, email, phone, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
			return
		}
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participant)
}

// Delete godoc
// @Summary Delete a participant
// @Description Deletes a participant. Fails with 409 conflict while the participant holds enrollments. Requires the admin role.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Success 200 {object} controllers.DeleteParticipantSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not admin)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (enrollments exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{participantID} [delete]
func (c *ParticipantController) Delete(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantID")
	if !uuidRegex.MatchString(participantID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "participantID must be a valid UUID")
		return
	}
	if err := c.Service.Delete(r.Context(), participantID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "participant not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteParticipantResponse{Status: "deleted"})
}

// List godoc
// @Summary List participants
// @Description Returns a paginated list of participants.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort field (name, email, created_at)"
// @Param sort_dir query string false "Sort direction (asc or desc, default asc)"
// @Success 200 {object} controllers.ListParticipantsSuccessResponse "data is an array of participants"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants [get]
func (c *ParticipantController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if list == nil {
		list = []*domain.Participant{}
	}
	helpers.WriteJSONPage(w, list, helpers.NewPaginationMeta(params, total))
}
