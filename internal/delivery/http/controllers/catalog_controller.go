package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventdesk/internal/delivery/http/helpers"
	"eventdesk/internal/domain"
)

// VenueRequest is the request body for POST and PUT /venues.
type VenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity *int   `json:"capacity"`
}

// Validate implements Validator.
func (v VenueRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(v.Name) == "" {
		errs = append(errs, "name is required")
	}
	if v.Capacity != nil && *v.Capacity < 0 {
		errs = append(errs, "capacity must be non-negative")
	}
	return errs
}

// CategoryRequest is the request body for POST and PUT /categories.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate implements Validator.
func (c CategoryRequest) Validate() []string {
	if strings.TrimSpace(c.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// VenueSuccessResponse is the success response envelope for single-venue endpoints.
type VenueSuccessResponse struct {
	Data  *domain.Venue     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListVenuesSuccessResponse is the success response envelope for GET /venues (200).
type ListVenuesSuccessResponse struct {
	Data       []*domain.Venue         `json:"data"`
	Error      *helpers.APIError       `json:"error"`
	Pagination *helpers.PaginationMeta `json:"pagination"`
}

// CategorySuccessResponse is the success response envelope for single-category endpoints.
type CategorySuccessResponse struct {
	Data  *domain.Category  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /categories (200).
type ListCategoriesSuccessResponse struct {
	Data       []*domain.Category      `json:"data"`
	Error      *helpers.APIError       `json:"error"`
	Pagination *helpers.PaginationMeta `json:"pagination"`
}

// DeleteCatalogResponse is the data payload for catalog DELETE endpoints (200).
type DeleteCatalogResponse struct {
	Status string `json:"status"`
}

// DeleteCatalogSuccessResponse is the success response envelope for catalog DELETE endpoints (200).
type DeleteCatalogSuccessResponse struct {
	Data  DeleteCatalogResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type CatalogController struct {
	Logger     *slog.Logger
	Venues     domain.VenueService
	Categories domain.CategoryService
}

func NewCatalogController(logger *slog.Logger, venues domain.VenueService, categories domain.CategoryService) *CatalogController {
	return &CatalogController{
		Logger:     logger,
		Venues:     venues,
		Categories: categories,
	}
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates a venue. Names are unique case-insensitively.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body VenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *CatalogController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := &domain.Venue{
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		Capacity: req.Capacity,
	}
	if err := c.Venues.Create(r.Context(), venue); err != nil {
		c.writeCatalogError(w, r, err, "venue")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// GetVenue godoc
// @Summary Get a venue by ID
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [get]
func (c *CatalogController) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venueID must be a valid UUID")
		return
	}
	venue, err := c.Venues.GetByID(r.Context(), venueID)
	if err != nil {
		c.writeCatalogError(w, r, err, "venue")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Description Replaces the venue's name, address, and capacity. Names are unique case-insensitively.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param venue body VenueRequest true "Venue data"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the updated venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [put]
func (c *CatalogController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venueID must be a valid UUID")
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue := &domain.Venue{
		ID:       venueID,
		Name:     strings.TrimSpace(req.Name),
		Address:  req.Address,
		Capacity: req.Capacity,
	}
	if err := c.Venues.Update(r.Context(), venue); err != nil {
		c.writeCatalogError(w, r, err, "venue")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Description Deletes a venue. Fails with 409 conflict while events reference it.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.DeleteCatalogSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (events reference this venue)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [delete]
func (c *CatalogController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueID")
	if !uuidRegex.MatchString(venueID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "venueID must be a valid UUID")
		return
	}
	if err := c.Venues.Delete(r.Context(), venueID); err != nil {
		c.writeCatalogError(w, r, err, "venue")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteCatalogResponse{Status: "deleted"})
}

// ListVenues godoc
// @Summary List venues
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort field (name, created_at)"
// @Param sort_dir query string false "Sort direction (asc or desc, default asc)"
// @Success 200 {object} controllers.ListVenuesSuccessResponse "data is an array of venues"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *CatalogController) ListVenues(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	list, total, err := c.Venues.List(r.Context(), params)
	if err != nil {
		c.writeCatalogError(w, r, err, "venue")
		return
	}
	if list == nil {
		list = []*domain.Venue{}
	}
	helpers.WriteJSONPage(w, list, helpers.NewPaginationMeta(params, total))
}

// CreateCategory godoc
// @Summary Create a category
// @Description Creates a category. Names are unique case-insensitively.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category data"
// @Success 201 {object} controllers.CategorySuccessResponse "data contains the created category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [post]
func (c *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category := &domain.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := c.Categories.Create(r.Context(), category); err != nil {
		c.writeCatalogError(w, r, err, "category")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, category)
}

// GetCategory godoc
// @Summary Get a category by ID
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} controllers.CategorySuccessResponse "data contains the category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{categoryID} [get]
func (c *CatalogController) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "categoryID must be a valid UUID")
		return
	}
	category, err := c.Categories.GetByID(r.Context(), categoryID)
	if err != nil {
		c.writeCatalogError(w, r, err, "category")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Replaces the category's name and description. Names are unique case-insensitively.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Param category body CategoryRequest true "Category data"
// @Success 200 {object} controllers.CategorySuccessResponse "data contains the updated category"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name already in use)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{categoryID} [put]
func (c *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "categoryID must be a valid UUID")
		return
	}
	var req CategoryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	category := &domain.Category{
		ID:          categoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := c.Categories.Update(r.Context(), category); err != nil {
		c.writeCatalogError(w, r, err, "category")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Deletes a category. Fails with 409 conflict while events reference it.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID (UUID)"
// @Success 200 {object} controllers.DeleteCatalogSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (events reference this category)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories/{categoryID} [delete]
func (c *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("categoryID")
	if !uuidRegex.MatchString(categoryID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "categoryID must be a valid UUID")
		return
	}
	if err := c.Categories.Delete(r.Context(), categoryID); err != nil {
		c.writeCatalogError(w, r, err, "category")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteCatalogResponse{Status: "deleted"})
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Param sort_by query string false "Sort field (name, created_at)"
// @Param sort_dir query string false "Sort direction (asc or desc, default asc)"
// @Success 200 {object} controllers.ListCategoriesSuccessResponse "data is an array of categories"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	list, total, err := c.Categories.List(r.Context(), params)
	if err != nil {
		c.writeCatalogError(w, r, err, "category")
		return
	}
	if list == nil {
		list = []*domain.Category{}
	}
	helpers.WriteJSONPage(w, list, helpers.NewPaginationMeta(params, total))
}

func (c *CatalogController) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, kind string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, kind+" not found")
		return
	}
	if errors.Is(err, domain.ErrDuplicateName) || errors.Is(err, domain.ErrInUse) {
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
