package handlers

import (
	"errors"

	"skyfare/internal/core/domain"
	"skyfare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the domain fault taxonomy onto HTTP statuses in one
// place so every handler reports the same code for the same fault.
func respondError(c *fiber.Ctx, err error) error {
	var denial *domain.Denial
	if errors.As(err, &denial) {
		return response.Denied(c, denial.Rule, denial.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotLoggedIn):
		return response.Unauthorized(c, "Not logged in")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")

	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrPassengerNotFound):
		return response.NotFound(c, "Passenger not found")
	case errors.Is(err, domain.ErrFlightNotFound):
		return response.NotFound(c, "Flight not found")
	case errors.Is(err, domain.ErrTicketNotFound):
		return response.NotFound(c, "Ticket not found")

	case errors.Is(err, domain.ErrUsernameTaken):
		return response.Conflict(c, "Username already taken")
	case errors.Is(err, domain.ErrAlreadyDeleted):
		return response.Conflict(c, "User already deleted")
	case errors.Is(err, domain.ErrHasFutureActiveTickets):
		return response.Conflict(c, "User still holds active tickets for future flights")
	case errors.Is(err, domain.ErrRoleRequired):
		return response.NotAcceptable(c, "Role is required")
	case errors.Is(err, domain.ErrImmutableCredentialField):
		return response.Forbidden(c, "Username and password cannot be updated")

	case errors.Is(err, domain.ErrFlightFull):
		return response.BadRequest(c, "There are no available seats on this flight")
	case errors.Is(err, domain.ErrAlreadyCanceled):
		return response.BadRequest(c, "Ticket already canceled")
	case errors.Is(err, domain.ErrTooLateToCancel):
		return response.BadRequest(c, "Too late to cancel this ticket")
	case errors.Is(err, domain.ErrDestinationTooShort):
		return response.BadRequest(c, "Destination must have at least 3 characters")
	case errors.Is(err, domain.ErrNotSignedIn):
		return response.BadRequest(c, "No session matches this token")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")

	case errors.Is(err, domain.ErrStoreUnavailable):
		return response.ServiceUnavailable(c, "Store unavailable")
	case errors.Is(err, domain.ErrStoreInconsistency):
		return response.InternalServerError(c, "Session store inconsistency")
	}

	return response.InternalServerError(c, "Internal server error")
}
