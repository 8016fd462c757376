package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/20mouhcine/jobgate-client/internal/api/apierror"
	"github.com/20mouhcine/jobgate-client/internal/api/request"
	"github.com/20mouhcine/jobgate-client/internal/domain"
)

func (c *Client) Events(ctx context.Context) ([]domain.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("events"), nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.Events -> %w", err)
	}
	defer resp.Body.Close()

	events := make([]domain.Event, 0)
	if err := c.decodeJSONResponse(resp, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (c *Client) Event(ctx context.Context, id uint) (domain.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("events", formatID(id)), nil, "")
	if err != nil {
		return domain.Event{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Event{}, fmt.Errorf("c.Event -> %w", err)
	}
	defer resp.Body.Close()

	var event domain.Event
	if err := c.decodeJSONResponse(resp, &event); err != nil {
		return domain.Event{}, err
	}

	return event, nil
}

func (c *Client) CreateEvent(ctx context.Context, payload request.CreateEventRequest) (domain.Event, error) {
	if err := payload.Validate(); err != nil {
		return domain.Event{}, apierror.New(apierror.KindValidation, err.Error(), err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, c.apipath("events"), payload)
	if err != nil {
		return domain.Event{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Event{}, fmt.Errorf("c.CreateEvent -> %w", err)
	}
	defer resp.Body.Close()

	var event domain.Event
	if err := c.decodeJSONResponse(resp, &event); err != nil {
		return domain.Event{}, err
	}

	return event, nil
}

// CancelEvent deletes an event. Ownership is enforced server-side; the
// client only surfaces the outcome.
func (c *Client) CancelEvent(ctx context.Context, id uint) error {
	req, err := c.newRequest(ctx, http.MethodDelete, c.apipath("events", formatID(id)), nil, "")
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("c.CancelEvent -> %w", err)
	}
	defer resp.Body.Close()

	return c.discardResponse(resp)
}

func (c *Client) EventStatistics(ctx context.Context, id uint) (domain.EventStatistics, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("events", formatID(id), "statistics"), nil, "")
	if err != nil {
		return domain.EventStatistics{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.EventStatistics{}, fmt.Errorf("c.EventStatistics -> %w", err)
	}
	defer resp.Body.Close()

	var stats domain.EventStatistics
	if err := c.decodeJSONResponse(resp, &stats); err != nil {
		return domain.EventStatistics{}, err
	}

	return stats, nil
}

func (c *Client) UserEvents(ctx context.Context, userID uint) ([]domain.Event, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.apipath("user", formatID(userID), "events"), nil, "")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("c.UserEvents -> %w", err)
	}
	defer resp.Body.Close()

	events := make([]domain.Event, 0)
	if err := c.decodeJSONResponse(resp, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (c *Client) CreateTimeSlot(ctx context.Context, payload request.CreateTimeSlotRequest) (domain.TimeSlot, error) {
	if err := payload.Validate(); err != nil {
		return domain.TimeSlot{}, apierror.New(apierror.KindValidation, err.Error(), err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, c.apipath("time-slots"), payload)
	if err != nil {
		return domain.TimeSlot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TimeSlot{}, fmt.Errorf("c.CreateTimeSlot -> %w", err)
	}
	defer resp.Body.Close()

	var slot domain.TimeSlot
	if err := c.decodeJSONResponse(resp, &slot); err != nil {
		return domain.TimeSlot{}, err
	}

	return slot, nil
}

// SendRdvReminders asks the server to notify talents with upcoming
// interview slots for the event.
func (c *Client) SendRdvReminders(ctx context.Context, eventID uint) error {
	payload := map[string]uint{"event_id": eventID}

	req, err := c.newJSONRequest(ctx, http.MethodPost, c.apipath("send-rdv-reminders"), payload)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("c.SendRdvReminders -> %w", err)
	}
	defer resp.Body.Close()

	return c.discardResponse(resp)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
