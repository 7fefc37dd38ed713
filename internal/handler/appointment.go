package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/middleware"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/service"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req dto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apt, err := h.appointmentService.Book(c.Request.Context(), middleware.GetUser(c), req)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apt)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	appointments := h.appointmentService.ListForStudent(middleware.GetUser(c).ID)
	c.JSON(http.StatusOK, dto.AppointmentListResponse{Appointments: appointments, Total: len(appointments)})
}

func (h *AppointmentHandler) ListForShop(c *gin.Context) {
	appointments := h.appointmentService.ListForShop(middleware.GetUser(c).ShopID)
	c.JSON(http.StatusOK, dto.AppointmentListResponse{Appointments: appointments, Total: len(appointments)})
}

func (h *AppointmentHandler) Accept(c *gin.Context) {
	h.mutate(c, h.appointmentService.Accept)
}

func (h *AppointmentHandler) Decline(c *gin.Context) {
	h.mutate(c, h.appointmentService.Decline)
}

func (h *AppointmentHandler) SettlePayment(c *gin.Context) {
	h.mutate(c, h.appointmentService.SettlePayment)
}

func (h *AppointmentHandler) Close(c *gin.Context) {
	h.mutate(c, h.appointmentService.Close)
}

type sellerMutation func(ctx context.Context, seller model.User, id uuid.UUID) (*model.Appointment, error)

func (h *AppointmentHandler) mutate(c *gin.Context, op sellerMutation) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	apt, err := op(c.Request.Context(), middleware.GetUser(c), id)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrShopNotFound), errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrShopOwnership):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your shop's appointment"})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrPaymentPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
