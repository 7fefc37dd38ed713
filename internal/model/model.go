package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleUser   UserRole = "USER"
	RoleSeller UserRole = "SELLER"
)

type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Role     UserRole  `json:"role"`
	ShopID   string    `json:"shopId,omitempty"`
}

type ShopCategory string

const (
	CategoryStationary  ShopCategory = "STATIONARY"
	CategoryElectronics ShopCategory = "ELECTRONICS"
	CategorySalon       ShopCategory = "SALON"
	CategoryLaundry     ShopCategory = "LAUNDRY"
)

type InventoryItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
	Stock     int             `json:"stock,omitempty"`
}

type ServiceItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration string          `json:"duration,omitempty"`
}

// Offering is the tagged variant a shop carries: retail shops stock
// inventory items, service shops offer bookable services. Exactly one
// variant is set per shop.
type Offering interface {
	isOffering()
}

type Retail struct {
	Items []InventoryItem
}

type Services struct {
	Services []ServiceItem
}

func (Retail) isOffering()   {}
func (Services) isOffering() {}

type Shop struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category ShopCategory `json:"category"`
	Location string       `json:"location"`
	Timing   string       `json:"timing"`
	Contact  string       `json:"contact"`
	ImageURL string       `json:"imageUrl"`
	Offering Offering     `json:"-"`
}

// shopJSON is the wire shape: the offering variant flattens back into the
// optional items/services fields.
type shopJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category ShopCategory    `json:"category"`
	Location string          `json:"location"`
	Timing   string          `json:"timing"`
	Contact  string          `json:"contact"`
	ImageURL string          `json:"imageUrl"`
	Items    []InventoryItem `json:"items,omitempty"`
	Services []ServiceItem   `json:"services,omitempty"`
}

func (s Shop) MarshalJSON() ([]byte, error) {
	out := shopJSON{
		ID:       s.ID,
		Name:     s.Name,
		Category: s.Category,
		Location: s.Location,
		Timing:   s.Timing,
		Contact:  s.Contact,
		ImageURL: s.ImageURL,
	}
	switch o := s.Offering.(type) {
	case Retail:
		out.Items = o.Items
	case Services:
		out.Services = o.Services
	case nil:
	default:
		return nil, fmt.Errorf("unknown offering variant %T", o)
	}
	return json.Marshal(out)
}

func (s *Shop) UnmarshalJSON(data []byte) error {
	var in shopJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ID = in.ID
	s.Name = in.Name
	s.Category = in.Category
	s.Location = in.Location
	s.Timing = in.Timing
	s.Contact = in.Contact
	s.ImageURL = in.ImageURL
	switch {
	case in.Items != nil:
		s.Offering = Retail{Items: in.Items}
	case in.Services != nil:
		s.Offering = Services{Services: in.Services}
	case in.Category == CategoryStationary || in.Category == CategoryElectronics:
		s.Offering = Retail{}
	default:
		s.Offering = Services{}
	}
	return nil
}

type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusOngoing   AppointmentStatus = "ongoing"
	StatusCompleted AppointmentStatus = "completed"
	StatusDeclined  AppointmentStatus = "declined"
)

// Terminal reports whether no further transition is defined out of the status.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusDeclined
}

type Appointment struct {
	ID             uuid.UUID         `json:"id"`
	ShopID         string            `json:"shopId"`
	StudentID      uuid.UUID         `json:"studentId"`
	StudentName    string            `json:"studentName"`
	StudentPhone   string            `json:"studentPhone"`
	ServiceID      string            `json:"serviceId"`
	ServiceName    string            `json:"serviceName"`
	Date           string            `json:"date"`
	TimeSlot       string            `json:"timeSlot"`
	Status         AppointmentStatus `json:"status"`
	PaymentSettled bool              `json:"paymentSettled,omitempty"`
	ReminderSent   bool              `json:"reminderSent,omitempty"`
}

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// StartsAt combines the appointment date and time slot into a local wall
// clock instant at minute precision.
func (a Appointment) StartsAt() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+SlotLayout, a.Date+" "+a.TimeSlot, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse appointment slot: %w", err)
	}
	return t, nil
}

type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uuid.UUID `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Action    string    `json:"action"`
	Metadata  string    `json:"metadata,omitempty"`
}
