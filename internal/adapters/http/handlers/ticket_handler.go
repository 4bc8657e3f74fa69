package handlers

import (
	"strconv"

	"skyfare/internal/adapters/http/middleware"
	"skyfare/internal/core/services"
	"skyfare/internal/pkg/response"
	"skyfare/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// TicketHandler handles ticket endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// PurchaseTicket handles ticket purchase
// @Summary Purchase ticket
// @Description Buy a ticket for a passenger; clients can only buy for themselves
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PurchaseInput true "Ticket data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets [post]
func (h *TicketHandler) PurchaseTicket(c *fiber.Ctx) error {
	var input services.PurchaseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	ticket, err := h.ticketService.Purchase(c.Context(), middleware.Actor(c), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Ticket purchased successfully", fiber.Map{
		"ticket": ticket,
	})
}

// GetUserTickets handles listing a user's tickets
// @Summary Get user tickets
// @Description List a user's tickets; clients see only their own
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/by-user/{userId} [get]
func (h *TicketHandler) GetUserTickets(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	tickets, err := h.ticketService.ListByUser(c.Context(), middleware.Actor(c), uint(userID))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Tickets retrieved successfully", fiber.Map{
		"tickets": tickets,
	})
}

// CancelTicket handles ticket cancellation. GET keeps the legacy wire
// contract the booking front end still calls.
// @Summary Cancel ticket
// @Description Cancel a ticket up to one day before departure
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ticketId path int true "Ticket ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tickets/cancel-by/{ticketId} [get]
func (h *TicketHandler) CancelTicket(c *fiber.Ctx) error {
	ticketID, err := strconv.ParseUint(c.Params("ticketId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid ticket ID")
	}

	ticket, err := h.ticketService.Cancel(c.Context(), middleware.Actor(c), uint(ticketID))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Ticket canceled successfully", fiber.Map{
		"ticket": ticket,
	})
}
