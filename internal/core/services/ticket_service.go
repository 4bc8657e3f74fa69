package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/core/authz"
	"skyfare/internal/core/domain"
	"skyfare/internal/metrics"
)

// CancelWindow is how long before departure cancellation closes.
const CancelWindow = 24 * time.Hour

// TicketService is the seat allocation engine: it admits purchases against
// remaining capacity and drives the cancel / soft-delete lifecycle.
type TicketService struct {
	ticketRepo repositories.TicketRepository
	flightRepo repositories.FlightRepository
	userRepo   repositories.UserRepository
	now        func() time.Time
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo repositories.TicketRepository,
	flightRepo repositories.FlightRepository,
	userRepo repositories.UserRepository,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		flightRepo: flightRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// PurchaseInput represents ticket purchase input
type PurchaseInput struct {
	PassengerID uint `json:"passenger_id" validate:"required"`
	FlightID    uint `json:"flight_id" validate:"required"`
}

// Purchase issues a ticket. Check order is fixed: passenger existence, then
// flight existence, then authorization, then capacity. Callers depend on
// which rejection wins when several apply.
func (s *TicketService) Purchase(ctx context.Context, actor domain.Actor, input *PurchaseInput) (*models.TicketResponse, error) {
	passenger, err := s.userRepo.GetByID(ctx, input.PassengerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.PurchaseRejections.WithLabelValues("not_found").Inc()
			return nil, domain.ErrPassengerNotFound
		}
		return nil, domain.StoreError(err)
	}
	if passenger.IsDeleted {
		metrics.PurchaseRejections.WithLabelValues("not_found").Inc()
		return nil, domain.ErrPassengerNotFound
	}

	flight, err := s.flightRepo.GetByID(ctx, input.FlightID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.PurchaseRejections.WithLabelValues("not_found").Inc()
			return nil, domain.ErrFlightNotFound
		}
		return nil, domain.StoreError(err)
	}

	target := &authz.Target{ID: passenger.ID}
	if denial := authz.Authorize(actor, authz.OpPurchaseTicket, target); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		metrics.PurchaseRejections.WithLabelValues("denied").Inc()
		return nil, denial
	}

	ticket := &models.Ticket{
		PassengerID: passenger.ID,
		FlightID:    flight.ID,
	}
	if err := s.ticketRepo.CreateIfSeatAvailable(ctx, ticket, flight.TotalSeats); err != nil {
		if errors.Is(err, domain.ErrFlightFull) {
			metrics.PurchaseRejections.WithLabelValues("flight_full").Inc()
			return nil, domain.ErrFlightFull
		}
		return nil, domain.StoreError(err)
	}

	metrics.TicketPurchases.Inc()
	log.Printf("🎫 Ticket %d issued: %s for %s", ticket.ID, flight.Code, passenger.Username)

	ticket.Passenger = passenger
	ticket.Flight = flight
	return ticket.ToResponse(), nil
}

// Cancel flips a ticket to canceled. The transition is one-way and closes
// 24 hours before departure. Rejections are checked in the externally
// observable order: unknown ticket, already canceled, too late, not owner.
func (s *TicketService) Cancel(ctx context.Context, actor domain.Actor, ticketID uint) (*models.TicketResponse, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, domain.StoreError(err)
	}
	if ticket.IsDeleted {
		// Deleted tickets look absent, same as deleted users.
		return nil, domain.ErrTicketNotFound
	}

	if ticket.IsCanceled {
		return nil, domain.ErrAlreadyCanceled
	}

	if ticket.Flight == nil {
		return nil, domain.ErrFlightNotFound
	}
	deadline := ticket.Flight.DepartTime.Add(-CancelWindow)
	if !s.now().Before(deadline) {
		return nil, domain.ErrTooLateToCancel
	}

	target := &authz.Target{ID: ticket.PassengerID}
	if denial := authz.Authorize(actor, authz.OpCancelTicket, target); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	ticket.IsCanceled = true
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, domain.StoreError(err)
	}

	metrics.TicketCancellations.Inc()
	log.Printf("🎫 Ticket %d canceled by %s", ticket.ID, actor.Username)
	return ticket.ToResponse(), nil
}

// ListByUser returns a user's non-deleted tickets, clients seeing only their
// own.
func (s *TicketService) ListByUser(ctx context.Context, actor domain.Actor, userID uint) ([]*models.TicketResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StoreError(err)
	}

	target := &authz.Target{ID: user.ID}
	if denial := authz.Authorize(actor, authz.OpReadTickets, target); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	tickets, err := s.ticketRepo.ListByPassenger(ctx, user.ID)
	if err != nil {
		return nil, domain.StoreError(err)
	}

	responses := make([]*models.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, ticket.ToResponse())
	}
	return responses, nil
}
