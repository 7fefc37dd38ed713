package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusone/campus-hub-api/internal/service"
)

// SweepWorker drives the appointment engine's periodic pass: confirmed
// appointments pick up reminders and time-based transitions on a fixed
// interval. Reminders are window-based; a pass that never ran is never
// replayed unless catch-up mode is configured on the engine.
type SweepWorker struct {
	appointments *service.AppointmentService
	interval     time.Duration
	log          *slog.Logger
	done         chan struct{}
}

func NewSweepWorker(appointments *service.AppointmentService, interval time.Duration, log *slog.Logger) *SweepWorker {
	return &SweepWorker{
		appointments: appointments,
		interval:     interval,
		log:          log,
		done:         make(chan struct{}),
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.appointments.Sweep(ctx)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	w.log.Info("sweep worker started", "interval", w.interval)
}

func (w *SweepWorker) Stop() { close(w.done) }
