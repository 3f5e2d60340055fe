package booking

import (
	"context"
	"errors"
	"io"
	"net/http"

	"expertbridge/internal/domain"
	"expertbridge/internal/middleware"
	"expertbridge/internal/modules/profile"
	"expertbridge/internal/pkg/response"
	"expertbridge/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	resolver CallerResolver
}

func NewHandler(service *Service, resolver CallerResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// RegisterRoutes expects rg to be behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings",
		middleware.RequireRole(string(domain.RoleEntrepreneur), string(domain.RoleNGO)),
		h.CreateBooking)
	rg.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
	rg.PATCH("/bookings/:id/decline", h.DeclineBooking)
	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)
	rg.PATCH("/bookings/:id/complete", h.CompleteBooking)
	rg.GET("/dashboard", h.GetDashboard)
}

func (h *Handler) caller(c *gin.Context) (*profile.Caller, bool) {
	caller, err := h.resolver.Resolve(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Login required")
			return nil, false
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
		return nil, false
	}
	return caller, true
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	caller, ok := h.caller(c)
	if !ok {
		return
	}

	b, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	var req ConfirmRequest
	// body is optional; chunked requests report no length, so read it always
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	caller, ok := h.caller(c)
	if !ok {
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), caller, c.Param("id"), req.MeetingLink)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) DeclineBooking(c *gin.Context) {
	h.transition(c, h.service.Decline)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

type transitionFunc func(ctx context.Context, caller *profile.Caller, bookingID string) (*domain.Booking, error)

func (h *Handler) transition(c *gin.Context, fn transitionFunc) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetDashboard(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dash)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
	}
}
