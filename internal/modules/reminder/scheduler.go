package reminder

import (
	"context"
	"log"
	"sync"
	"time"

	"tutorhub/internal/domain"
	"tutorhub/internal/pkg/clock"
)

// BookingSource supplies the bookings a sweep inspects.
type BookingSource interface {
	FindConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

// Notifier is the emission side: the Exists check is the sole mechanism that
// keeps repeated sweeps from duplicating reminders, since the sweep interval
// is far shorter than the lookahead window.
type Notifier interface {
	Exists(ctx context.Context, bookingID int64, t domain.NotificationType, recipientID int64) (bool, error)
	NotifyBookingEvent(ctx context.Context, b *domain.Booking, t domain.NotificationType) error
}

// Config controls the sweep cadence and the lookahead window relative to now.
type Config struct {
	Interval      time.Duration
	LookaheadFrom time.Duration
	LookaheadTo   time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:      time.Minute,
		LookaheadFrom: 12 * time.Minute,
		LookaheadTo:   2 * time.Hour,
	}
}

// Scheduler is a single long-lived background task owned by the application
// lifecycle: started once, stopped via its stop channel or context.
type Scheduler struct {
	bookings BookingSource
	notifs   Notifier
	clock    clock.Clock
	cfg      Config

	// guards against overlapping sweeps; a tick that fires while the
	// previous sweep is still running is skipped, not queued
	mu sync.Mutex
}

func NewScheduler(bookings BookingSource, notifs Notifier, clk clock.Clock, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.LookaheadFrom <= 0 || cfg.LookaheadTo <= cfg.LookaheadFrom {
		def := DefaultConfig()
		cfg.LookaheadFrom = def.LookaheadFrom
		cfg.LookaheadTo = def.LookaheadTo
	}
	return &Scheduler{
		bookings: bookings,
		notifs:   notifs,
		clock:    clk,
		cfg:      cfg,
	}
}

// Start launches the recurring sweep goroutine and returns a stop channel.
func (s *Scheduler) Start(ctx context.Context) chan struct{} {
	stopCh := make(chan struct{})

	go func() {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.mu.TryLock() {
					log.Println("reminder_sweep_skipped reason=previous_sweep_running")
					continue
				}
				if err := s.RunSweep(ctx); err != nil {
					log.Printf("reminder_sweep_error error=%q", err)
				}
				s.mu.Unlock()
			case <-stopCh:
				log.Println("reminder scheduler stopped")
				return
			case <-ctx.Done():
				log.Println("reminder scheduler stopped (context done)")
				return
			}
		}
	}()

	log.Printf("reminder scheduler started interval=%s window=[now+%s, now+%s]",
		s.cfg.Interval, s.cfg.LookaheadFrom, s.cfg.LookaheadTo)
	return stopCh
}

// RunSweep performs one pass: every confirmed booking starting inside the
// lookahead window gets a reminder to both participants unless one was
// already sent. Each booking is isolated; a failure on one never aborts the
// rest, and the next tick retries whatever was missed.
func (s *Scheduler) RunSweep(ctx context.Context) error {
	now := s.clock.Now().UTC()
	from := now.Add(s.cfg.LookaheadFrom)
	to := now.Add(s.cfg.LookaheadTo)

	upcoming, err := s.bookings.FindConfirmedStartingBetween(ctx, from, to)
	if err != nil {
		return err
	}

	sent := 0
	for i := range upcoming {
		b := &upcoming[i]

		exists, err := s.notifs.Exists(ctx, b.ID, domain.NotifBookingReminder, b.StudentID)
		if err != nil {
			log.Printf("reminder_check_failed booking_id=%d error=%q", b.ID, err)
			continue
		}
		if exists {
			continue
		}

		if err := s.notifs.NotifyBookingEvent(ctx, b, domain.NotifBookingReminder); err != nil {
			log.Printf("reminder_notify_failed booking_id=%d error=%q", b.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("reminder_sweep_done inspected=%d reminded=%d window=[%s, %s]",
			len(upcoming), sent, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	return nil
}
