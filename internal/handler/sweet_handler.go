package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sweetshop/internal/errors"
	"sweetshop/internal/repository"
	"sweetshop/internal/service"
)

// SweetHandler handles catalog and inventory endpoints.
type SweetHandler struct {
	sweetService service.SweetService
}

// NewSweetHandler creates a new sweet handler.
func NewSweetHandler(sweetService service.SweetService) *SweetHandler {
	return &SweetHandler{sweetService: sweetService}
}

// CreateSweetRequest represents a sweet creation request.
type CreateSweetRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// UpdateSweetRequest represents a partial sweet update. Absent fields are
// left untouched; explicit zeros are applied.
type UpdateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// RestockRequest represents a restock request.
type RestockRequest struct {
	Quantity *int `json:"quantity"`
}

// SweetMessageResponse wraps a sweet with an operation message.
type SweetMessageResponse struct {
	Message string      `json:"message"`
	Sweet   interface{} `json:"sweet"`
}

// Create godoc
// @Summary Add a sweet to the catalog
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSweetRequest true "Sweet data"
// @Success 201 {object} model.Sweet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req CreateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sweet, err := h.sweetService.Create(c.Request().Context(), service.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, sweet)
}

// List godoc
// @Summary List all sweets, newest first
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Sweet
// @Failure 401 {object} errors.ErrorResponse
// @Router /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.sweetService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sweets)
}

// Search godoc
// @Summary Search sweets by name, category and price range
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param name query string false "Case-insensitive name substring"
// @Param category query string false "Case-insensitive category substring"
// @Param minPrice query number false "Minimum price, inclusive"
// @Param maxPrice query number false "Maximum price, inclusive"
// @Success 200 {array} model.Sweet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	filter := repository.SweetFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}

	var violations []string
	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			violations = append(violations, "minPrice must be a number")
		} else {
			filter.MinPrice = &v
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			violations = append(violations, "maxPrice must be a number")
		} else {
			filter.MaxPrice = &v
		}
	}
	if len(violations) > 0 {
		return httpError(errors.NewValidation(violations...))
	}

	sweets, err := h.sweetService.Search(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sweets)
}

// GetByID godoc
// @Summary Get a sweet by id
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet id"
// @Success 200 {object} model.Sweet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sweets/{id} [get]
func (h *SweetHandler) GetByID(c echo.Context) error {
	sweet, err := h.sweetService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sweet)
}

// Update godoc
// @Summary Update fields of a sweet
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet id"
// @Param request body UpdateSweetRequest true "Fields to update"
// @Success 200 {object} model.Sweet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req UpdateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sweet, err := h.sweetService.Update(c.Request().Context(), c.Param("id"), service.UpdateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, sweet)
}

// Delete godoc
// @Summary Remove a sweet from the catalog
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.sweetService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Sweet deleted successfully",
	})
}

// Purchase godoc
// @Summary Purchase one unit of a sweet
// @Tags sweets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet id"
// @Success 200 {object} SweetMessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	sweet, err := h.sweetService.Purchase(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, SweetMessageResponse{
		Message: "Purchase successful",
		Sweet:   sweet,
	})
}

// Restock godoc
// @Summary Restock a sweet by a positive amount
// @Tags sweets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sweet id"
// @Param request body RestockRequest true "Restock amount"
// @Success 200 {object} SweetMessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	var req RestockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	sweet, err := h.sweetService.Restock(c.Request().Context(), c.Param("id"), quantity)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, SweetMessageResponse{
		Message: "Restock successful",
		Sweet:   sweet,
	})
}
