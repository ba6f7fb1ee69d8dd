package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/turfmanager/service-booking/internal/application"
	"github.com/turfmanager/service-booking/internal/response"
)

// AdminHandler handles the administrative rate policy and stats endpoints.
type AdminHandler struct {
	rates    *application.RatesService
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(rates *application.RatesService, bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{rates: rates, bookings: bookings}
}

// RegisterRoutes registers the admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/rates", h.GetRates)
		admin.PUT("/rates", h.UpdateRates)
		admin.GET("/stats", h.GetStats)
	}
}

// GetRates handles GET /api/v1/admin/rates.
func (h *AdminHandler) GetRates(c *gin.Context) {
	result, err := h.rates.GetRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetStats handles GET /api/v1/admin/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	result, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateRates handles PUT /api/v1/admin/rates, overwriting the policy in full.
func (h *AdminHandler) UpdateRates(c *gin.Context) {
	var req application.RatesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.rates.UpdateRates(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
