package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

func runEvents(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("events")
	mine := fs.Bool("mine", false, "only events tied to the logged-in account")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *mine {
		identity := e.session.Identity()
		if identity == nil {
			return errors.New("not authenticated: the stored token was rejected, run \"jobgate login\"")
		}

		events, err := e.client.UserEvents(ctx, identity.ID)
		if err != nil {
			return fmt.Errorf("events fetch failed -> %w", err)
		}
		printEvents(events)

		return nil
	}

	events, err := e.client.Events(ctx)
	if err != nil {
		// Degrade to the local cache with an explicit notice instead of
		// failing the whole listing.
		zap.L().Warn("events fetch failed, falling back to cache", zap.Error(err))
		cached, cerr := e.store.CachedEvents(ctx)
		if cerr != nil || len(cached) == 0 {
			return fmt.Errorf("events fetch failed -> %w", err)
		}
		fmt.Println("(offline: showing cached events)")
		events = cached
	} else if err := e.store.CacheEvents(ctx, events); err != nil {
		zap.L().Warn("caching events failed", zap.Error(err))
	}

	printEvents(events)

	return nil
}

func printEvents(events []domain.Event) {
	for _, event := range events {
		fmt.Printf("%4d  %s  %s  %s\n",
			event.ID,
			event.StartDate.Format("2006-01-02"),
			event.Location,
			event.Title,
		)
	}
}

func runEvent(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("event")
	id := fs.Uint("id", 0, "event id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()

		return errUsage
	}

	event, err := e.client.Event(ctx, uint(*id))
	if err != nil {
		return fmt.Errorf("event fetch failed -> %w", err)
	}

	fmt.Printf("%s\n%s\n%s\n\n%s\n",
		event.Title,
		formatPeriod(event.StartDate, event.EndDate),
		event.Location,
		event.Description,
	)
	if event.IsTimeSlotEnabled {
		fmt.Println("\ninterview time slots are enabled for this event")
	}

	return nil
}

func runEventCreate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("event-create")
	req := request.CreateEventRequest{}
	var start, end string
	fs.StringVar(&req.Title, "title", "", "event title")
	fs.StringVar(&start, "start", "", "start date (RFC 3339)")
	fs.StringVar(&end, "end", "", "end date (RFC 3339)")
	fs.StringVar(&req.Location, "location", "", "event location")
	fs.StringVar(&req.Description, "description", "", "event description")
	fs.BoolVar(&req.IsTimeSlotEnabled, "time-slots", false, "enable interview time slots")
	if err := parse(fs, args); err != nil {
		return err
	}

	var err error
	if req.StartDate, err = time.Parse(time.RFC3339, start); err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	if req.EndDate, err = time.Parse(time.RFC3339, end); err != nil {
		return fmt.Errorf("invalid -end: %w", err)
	}

	event, err := e.client.CreateEvent(ctx, req)
	if err != nil {
		return fmt.Errorf("event creation failed -> %w", err)
	}

	fmt.Printf("event %d created: %s\n", event.ID, event.Title)

	return nil
}

func runEventCancel(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("event-cancel")
	id := fs.Uint("id", 0, "event id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()

		return errUsage
	}

	if err := e.client.CancelEvent(ctx, uint(*id)); err != nil {
		return fmt.Errorf("event cancellation failed -> %w", err)
	}

	fmt.Printf("event %d cancelled\n", *id)

	return nil
}

func runStats(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("stats")
	id := fs.Uint("event", 0, "event id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()

		return errUsage
	}

	stats, err := e.client.EventStatistics(ctx, uint(*id))
	if err != nil {
		// Zeroed statistics with a notice, per the dashboard fallback.
		zap.L().Warn("statistics fetch failed, showing zeroes", zap.Error(err))
		fmt.Println("(statistics unavailable, showing zeroes; retry later)")
	}

	fmt.Printf("registered: %d\nattended:   %d\nselected:   %d\naverage note: %.2f\nslots booked: %d\n",
		stats.RegisteredCount,
		stats.AttendedCount,
		stats.SelectedCount,
		stats.AverageNote,
		stats.SlotsBooked,
	)

	return nil
}

func runSlotCreate(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("slot-create")
	req := request.CreateTimeSlotRequest{}
	var eventID uint
	var start, end string
	fs.UintVar(&eventID, "event", 0, "event id")
	fs.StringVar(&start, "start", "", "slot start (RFC 3339)")
	fs.StringVar(&end, "end", "", "slot end (RFC 3339)")
	if err := parse(fs, args); err != nil {
		return err
	}
	req.EventID = eventID

	var err error
	if req.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	if req.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
		return fmt.Errorf("invalid -end: %w", err)
	}

	slot, err := e.client.CreateTimeSlot(ctx, req)
	if err != nil {
		return fmt.Errorf("time slot creation failed -> %w", err)
	}

	fmt.Printf("slot created: %s\n", formatPeriod(slot.StartTime, slot.EndTime))

	return nil
}

func formatPeriod(start, end time.Time) string {
	return start.Format(time.RFC1123) + " - " + end.Format(time.RFC1123)
}

func runRemind(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("remind")
	id := fs.Uint("event", 0, "event id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		fs.Usage()

		return errUsage
	}

	if err := e.client.SendRdvReminders(ctx, uint(*id)); err != nil {
		return fmt.Errorf("sending reminders failed -> %w", err)
	}

	fmt.Printf("reminders queued for event %d\n", *id)

	return nil
}
