package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/atlashaul/portal/internal/platform/events"
)

// EventsServiceInterface defines the interface for calendar operations
type EventsServiceInterface interface {
	Approved(ctx context.Context) ([]events.Event, error)
	Calendar(ctx context.Context, from, to time.Time) ([]events.Event, error)
}

// EventsHandler handles convoy calendar HTTP requests
type EventsHandler struct {
	eventsService EventsServiceInterface
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(eventsService EventsServiceInterface) *EventsHandler {
	return &EventsHandler{
		eventsService: eventsService,
	}
}

// EventResponse represents a calendar event
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	StatusColor string `json:"status_color"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Departure   string `json:"departure,omitempty"`
	Destination string `json:"destination,omitempty"`
	Server      string `json:"server,omitempty"`
}

// EventsListResponse represents the calendar listing
type EventsListResponse struct {
	Events []EventResponse `json:"events"`
}

// GetEvents handles GET /events. Optional from/to query parameters (RFC3339)
// restrict the calendar to a range.
func (h *EventsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	var (
		list []events.Event
		err  error
	)

	if fromStr == "" && toStr == "" {
		list, err = h.eventsService.Approved(r.Context())
	} else {
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, fromStr); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid 'from' timestamp")
			return
		}
		if to, err = time.Parse(time.RFC3339, toStr); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid 'to' timestamp")
			return
		}
		list, err = h.eventsService.Calendar(r.Context(), from, to)
	}

	if err != nil {
		if errors.Is(err, events.ErrZeroRange) || errors.Is(err, events.ErrEndBeforeStart) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondAppError(w, err)
		return
	}

	responses := make([]EventResponse, 0, len(list))
	for _, ev := range list {
		responses = append(responses, toEventResponse(ev))
	}

	respondWithJSON(w, http.StatusOK, EventsListResponse{Events: responses})
}

func toEventResponse(ev events.Event) EventResponse {
	style := ev.Status.Style()
	return EventResponse{
		ID:          ev.ID,
		Title:       ev.Title,
		Status:      string(ev.Status),
		StatusLabel: style.Label,
		StatusColor: style.Color,
		StartsAt:    ev.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:      ev.EndsAt.UTC().Format(time.RFC3339),
		Departure:   ev.Departure,
		Destination: ev.Destination,
		Server:      ev.Server,
	}
}
