package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusone/campus-hub-api/internal/model"
)

// --- Auth ---

type LoginRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required"`
	Role     model.UserRole `json:"role" binding:"required,oneof=USER SELLER"`
	ShopID   string         `json:"shopId"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID     uuid.UUID      `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Role   model.UserRole `json:"role"`
	ShopID string         `json:"shopId,omitempty"`
}

// --- Inventory ---

type AddItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Stock    *int            `json:"stock"`
	Duration string          `json:"duration"`
}

type UpdateItemRequest struct {
	Price     *decimal.Decimal `json:"price"`
	Stock     *int             `json:"stock"`
	Available *bool            `json:"available"`
}

// --- Appointments ---

type BookAppointmentRequest struct {
	ShopID    string `json:"shopId" binding:"required"`
	ServiceID string `json:"serviceId" binding:"required"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Phone     string `json:"phone"`
}

type AppointmentListResponse struct {
	Appointments []model.Appointment `json:"appointments"`
	Total        int                 `json:"total"`
}

// --- Replication ---

type ExportResponse struct {
	Token string `json:"token"`
}

type ImportRequest struct {
	Token string `json:"token" binding:"required"`
}

type ImportResponse struct {
	Users int `json:"users"`
}

// --- Assistant tools ---

type ToolCallRequest struct {
	Name string            `json:"name" binding:"required"`
	Args map[string]string `json:"args"`
}

type ToolCallResponse struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
