package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/opscore/helpdesk-api/internal/api/dto"
	"github.com/opscore/helpdesk-api/internal/service"
	apperrors "github.com/opscore/helpdesk-api/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets?status=&severity=.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	filter := service.TicketListFilter{
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
	}
	tickets, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTickets(tickets))
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromTicket(ticket))
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Create(c.UserContext(), ticketInput(req))
	if err != nil {
		return err
	}
	c.Location(fmt.Sprintf("/tickets/%d", ticket.ID))
	return c.Status(http.StatusCreated).JSON(dto.FromTicket(ticket))
}

// Replace PUT /tickets/:id.
func (h *TicketsHandler) Replace(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if _, err := h.service.Replace(c.UserContext(), id, ticketInput(req)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// PatchStatus PATCH /tickets/:id/status. The body is a single JSON string,
// e.g. "Closed".
func (h *TicketsHandler) PatchStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.PatchStatus(c.UserContext(), id, rawStringBody(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// PatchAssignee PATCH /tickets/:id/assign. The body is a single JSON
// string; empty or absent unassigns.
func (h *TicketsHandler) PatchAssignee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.PatchAssignee(c.UserContext(), id, rawStringBody(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func ticketInput(req dto.TicketRequest) service.TicketInput {
	return service.TicketInput{
		ID:             req.ID,
		Subject:        req.Subject,
		RequesterEmail: req.RequesterEmail,
		Description:    req.Description,
		Severity:       req.Severity,
		Status:         req.Status,
		AssignedTo:     req.AssignedTo,
	}
}

// parseID reads the numeric route id. Non-numeric ids behave like absent
// records, matching a typed route constraint.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFound("resource", nil)
	}
	return id, nil
}

// rawStringBody decodes a body that is a bare JSON string; a body that is
// not valid JSON is taken literally.
func rawStringBody(c *fiber.Ctx) string {
	body := c.Body()
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return string(body)
}
