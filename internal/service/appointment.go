package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusone/campus-hub-api/internal/dto"
	"github.com/campusone/campus-hub-api/internal/model"
	"github.com/campusone/campus-hub-api/internal/relay"
	"github.com/campusone/campus-hub-api/internal/store"
)

var (
	ErrValidation          = errors.New("invalid booking request")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("transition not allowed")
	ErrPaymentPending      = errors.New("payment must be settled before closing")
)

// AppointmentService is the lifecycle engine. It is the single owner of the
// appointment collection: every mutation, including the periodic sweep's
// read-compute-write pass, runs under one mutex so user actions can never
// interleave with a half-applied sweep.
type AppointmentService struct {
	store    store.Store
	shops    *ShopService
	notifier Notifier
	activity *ActivityLog
	log      *slog.Logger

	now             func() time.Time
	reminderWindow  time.Duration
	reminderCatchup bool

	mu           sync.Mutex
	appointments []model.Appointment
}

type AppointmentOption func(*AppointmentService)

// WithClock substitutes the wall clock, for tests.
func WithClock(now func() time.Time) AppointmentOption {
	return func(s *AppointmentService) { s.now = now }
}

// WithReminderWindow overrides the lead time within which a reminder fires.
func WithReminderWindow(window time.Duration) AppointmentOption {
	return func(s *AppointmentService) { s.reminderWindow = window }
}

// WithReminderCatchup switches the reminder from window semantics (skipped
// forever if the sweep missed the window) to catch-up semantics (fires late
// as long as the appointment is still confirmed and was never reminded).
func WithReminderCatchup(enabled bool) AppointmentOption {
	return func(s *AppointmentService) { s.reminderCatchup = enabled }
}

func NewAppointmentService(ctx context.Context, st store.Store, shops *ShopService, notifier Notifier, activity *ActivityLog, log *slog.Logger, opts ...AppointmentOption) (*AppointmentService, error) {
	appointments, err := st.LoadAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}
	s := &AppointmentService{
		store:          st,
		shops:          shops,
		notifier:       notifier,
		activity:       activity,
		log:            log,
		now:            time.Now,
		reminderWindow: 5 * time.Minute,
		appointments:   appointments,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Book validates the request and creates an appointment in the requested
// state. A rejected booking leaves the collection untouched.
func (s *AppointmentService) Book(ctx context.Context, student model.User, req dto.BookAppointmentRequest) (*model.Appointment, error) {
	if req.Phone == "" {
		return nil, fmt.Errorf("%w: phone number required", ErrValidation)
	}
	if req.Date == "" || req.TimeSlot == "" {
		return nil, fmt.Errorf("%w: date and time slot required", ErrValidation)
	}
	day, err := time.ParseInLocation(model.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed date %q", ErrValidation, req.Date)
	}
	if _, err := time.Parse(model.SlotLayout, req.TimeSlot); err != nil {
		return nil, fmt.Errorf("%w: malformed time slot %q", ErrValidation, req.TimeSlot)
	}
	today := s.today()
	if day.Before(today) {
		return nil, fmt.Errorf("%w: date %s is in the past", ErrValidation, req.Date)
	}

	svc, err := s.shops.ResolveService(req.ShopID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	apt := model.Appointment{
		ID:           uuid.New(),
		ShopID:       req.ShopID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentPhone: req.Phone,
		ServiceID:    svc.ID,
		ServiceName:  svc.Name,
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		Status:       model.StatusRequested,
	}

	s.mu.Lock()
	s.appointments = append(s.appointments, apt)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.persist(ctx, snapshot)

	s.activity.Record(ctx, student, "appointment.book", apt.ServiceName)
	s.notifier.Dispatch(ctx, relay.KindEmail, student.Email,
		fmt.Sprintf("Recorded %s on %s at %s.", apt.ServiceName, apt.Date, apt.TimeSlot),
		"Appointment Booked")
	return &apt, nil
}

// ListForStudent returns a non-nil slice so an empty result serializes as
// an empty JSON array.
func (s *AppointmentService) ListForStudent(studentID uuid.UUID) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Appointment{}
	for _, a := range s.appointments {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

func (s *AppointmentService) ListForShop(shopID string) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Appointment{}
	for _, a := range s.appointments {
		if a.ShopID == shopID {
			out = append(out, a)
		}
	}
	return out
}

// Accept moves a requested appointment to confirmed.
func (s *AppointmentService) Accept(ctx context.Context, seller model.User, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, seller, id, "appointment.accept", func(a *model.Appointment) error {
		if a.Status != model.StatusRequested {
			return fmt.Errorf("%w: accept from %s", ErrInvalidTransition, a.Status)
		}
		a.Status = model.StatusConfirmed
		return nil
	}, func(a model.Appointment) string {
		return fmt.Sprintf("CAMPUS HUB: Your %s appointment on %s at %s is confirmed.", a.ServiceName, a.Date, a.TimeSlot)
	})
}

// Decline moves a requested appointment to the terminal declined state.
func (s *AppointmentService) Decline(ctx context.Context, seller model.User, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, seller, id, "appointment.decline", func(a *model.Appointment) error {
		if a.Status != model.StatusRequested {
			return fmt.Errorf("%w: decline from %s", ErrInvalidTransition, a.Status)
		}
		a.Status = model.StatusDeclined
		return nil
	}, func(a model.Appointment) string {
		return fmt.Sprintf("CAMPUS HUB: Your %s appointment on %s at %s was declined.", a.ServiceName, a.Date, a.TimeSlot)
	})
}

// SettlePayment flags an ongoing appointment as paid; the status is
// unchanged. Payment must precede closure.
func (s *AppointmentService) SettlePayment(ctx context.Context, seller model.User, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, seller, id, "appointment.settle", func(a *model.Appointment) error {
		if a.Status != model.StatusOngoing {
			return fmt.Errorf("%w: settle payment from %s", ErrInvalidTransition, a.Status)
		}
		a.PaymentSettled = true
		return nil
	}, func(a model.Appointment) string {
		return fmt.Sprintf("CAMPUS HUB: Payment received for %s.", a.ServiceName)
	})
}

// Close completes an ongoing appointment. Rejected unless payment was
// settled first.
func (s *AppointmentService) Close(ctx context.Context, seller model.User, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, seller, id, "appointment.close", func(a *model.Appointment) error {
		if a.Status != model.StatusOngoing {
			return fmt.Errorf("%w: close from %s", ErrInvalidTransition, a.Status)
		}
		if !a.PaymentSettled {
			return ErrPaymentPending
		}
		a.Status = model.StatusCompleted
		return nil
	}, func(a model.Appointment) string {
		return fmt.Sprintf("CAMPUS HUB: %s is complete. See you again!", a.ServiceName)
	})
}

// transition applies a seller mutation atomically. Ownership is enforced
// here rather than trusted to callers: a seller can only act on
// appointments belonging to their own shop. A successful transition sends
// the student a system notification with the outcome.
func (s *AppointmentService) transition(ctx context.Context, seller model.User, id uuid.UUID, action string, apply func(*model.Appointment) error, notice func(model.Appointment) string) (*model.Appointment, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrAppointmentNotFound
	}
	if s.appointments[idx].ShopID != seller.ShopID {
		s.mu.Unlock()
		return nil, ErrShopOwnership
	}
	if err := apply(&s.appointments[idx]); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	apt := s.appointments[idx]
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.activity.Record(ctx, seller, action, apt.ServiceName)
	s.notifier.Dispatch(ctx, relay.KindSystem, apt.StudentPhone, notice(apt), "")
	return &apt, nil
}

// Sweep is the periodic pass advancing time-dependent state: confirmed
// appointments inside the reminder window get exactly one reminder, and
// confirmed appointments whose slot has arrived move to ongoing. The whole
// read-compute-write cycle holds the collection lock.
func (s *AppointmentService) Sweep(ctx context.Context) {
	now := s.now()
	var reminders []model.Appointment

	s.mu.Lock()
	changed := false
	for i := range s.appointments {
		a := &s.appointments[i]
		if a.Status != model.StatusConfirmed {
			continue
		}
		startsAt, err := a.StartsAt()
		if err != nil {
			s.log.Warn("skip unparseable appointment slot", "id", a.ID, "date", a.Date, "slot", a.TimeSlot)
			continue
		}
		remaining := startsAt.Sub(now)
		if !a.ReminderSent && s.inReminderWindow(remaining) {
			a.ReminderSent = true
			reminders = append(reminders, *a)
			changed = true
		}
		if !now.Before(startsAt) {
			a.Status = model.StatusOngoing
			changed = true
		}
	}
	var snapshot []model.Appointment
	if changed {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.persist(ctx, snapshot)
	}
	minutes := int(s.reminderWindow.Minutes())
	for _, a := range reminders {
		s.notifier.Dispatch(ctx, relay.KindSMS, a.StudentPhone,
			fmt.Sprintf("CAMPUS HUB: Your appointment for %s at %s starts in %d minutes!", a.ServiceName, a.TimeSlot, minutes), "")
	}
}

func (s *AppointmentService) inReminderWindow(remaining time.Duration) bool {
	if s.reminderCatchup {
		return remaining <= s.reminderWindow
	}
	return remaining > 0 && remaining <= s.reminderWindow
}

func (s *AppointmentService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func (s *AppointmentService) persist(ctx context.Context, appointments []model.Appointment) {
	if err := s.store.SaveAppointments(ctx, appointments); err != nil {
		s.log.Warn("persist appointments", "error", err)
	}
}

func (s *AppointmentService) snapshotLocked() []model.Appointment {
	out := make([]model.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}
