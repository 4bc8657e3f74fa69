package handlers

import (
	"skyfare/internal/adapters/http/middleware"
	"skyfare/internal/core/services"
	"skyfare/internal/pkg/response"
	"skyfare/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// FlightHandler handles flight endpoints
type FlightHandler struct {
	flightService *services.FlightService
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(flightService *services.FlightService) *FlightHandler {
	return &FlightHandler{flightService: flightService}
}

// CreateFlight handles flight creation (Employee/Admin)
// @Summary Create flight
// @Description Create a flight; the code is derived from the destination and sequence
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateFlightInput true "Flight data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /flights [post]
func (h *FlightHandler) CreateFlight(c *fiber.Ctx) error {
	var input services.CreateFlightInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	flight, err := h.flightService.Create(c.Context(), middleware.Actor(c), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Flight created successfully", fiber.Map{
		"flight": flight,
	})
}

// ListAvailableFlights handles listing future flights with free seats
// @Summary List available flights
// @Description List future flights that still have a free seat
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /flights/available [get]
func (h *FlightHandler) ListAvailableFlights(c *fiber.Ctx) error {
	flights, err := h.flightService.ListAvailable(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Flights retrieved successfully", fiber.Map{
		"flights": flights,
	})
}

// ListAllFlights handles the full flight listing (Employee/Admin)
// @Summary List all flights
// @Description List every flight including departed and full ones
// @Tags Flights
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /flights [get]
func (h *FlightHandler) ListAllFlights(c *fiber.Ctx) error {
	flights, err := h.flightService.ListAll(c.Context(), middleware.Actor(c))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Flights retrieved successfully", fiber.Map{
		"flights": flights,
	})
}
