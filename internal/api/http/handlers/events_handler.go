package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/opscore/helpdesk-api/internal/api/dto"
	"github.com/opscore/helpdesk-api/internal/service"
	apperrors "github.com/opscore/helpdesk-api/pkg/util"
)

// EventsHandler manages calendar event endpoints.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// List GET /events?from=&to=&online=&q=. Malformed filter values are
// rejected rather than ignored.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	filter := service.EventListFilter{SearchTerm: c.Query("q")}

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseTimeQuery(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid filter", map[string]any{"from": "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		}
		filter.From = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseTimeQuery(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid filter", map[string]any{"to": "must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		}
		filter.To = &parsed
	}
	if raw := c.Query("online"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid filter", map[string]any{"online": "must be a boolean"})
		}
		filter.Online = &parsed
	}

	events, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromEvents(events))
}

// Get GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	event, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromEvent(event))
}

// Create POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	event, err := h.service.Create(c.UserContext(), eventInput(req))
	if err != nil {
		return err
	}
	c.Location(fmt.Sprintf("/events/%d", event.ID))
	return c.Status(http.StatusCreated).JSON(dto.FromEvent(event))
}

// Replace PUT /events/:id.
func (h *EventsHandler) Replace(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.service.Replace(c.UserContext(), id, eventInput(req)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func eventInput(req dto.EventRequest) service.EventInput {
	return service.EventInput{
		ID:       req.ID,
		Title:    req.Title,
		Location: req.Location,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		IsOnline: req.IsOnline,
		Notes:    req.Notes,
	}
}

func parseTimeQuery(val string) (time.Time, error) {
	var lastErr error
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		t, err := time.Parse(layout, val)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
