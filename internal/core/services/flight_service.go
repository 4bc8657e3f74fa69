package services

import (
	"context"
	"errors"
	"log"
	"time"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/core/authz"
	"skyfare/internal/core/domain"
	"skyfare/internal/metrics"
	"skyfare/internal/pkg/flightcode"
)

// FlightService handles flight creation and listing. Flights are immutable
// once created.
type FlightService struct {
	flightRepo repositories.FlightRepository
	now        func() time.Time
}

// NewFlightService creates a new flight service
func NewFlightService(flightRepo repositories.FlightRepository) *FlightService {
	return &FlightService{
		flightRepo: flightRepo,
		now:        time.Now,
	}
}

// CreateFlightInput represents flight creation input
type CreateFlightInput struct {
	Destination string    `json:"destination" validate:"required,max=100"`
	DepartTime  time.Time `json:"depart_time" validate:"required"`
	TotalSeats  int       `json:"total_seats" validate:"gte=0"`
}

// Create creates a flight for a staff actor. The code is minted from the
// destination and the next flight sequence inside the insert transaction.
func (s *FlightService) Create(ctx context.Context, actor domain.Actor, input *CreateFlightInput) (*models.FlightResponse, error) {
	if denial := authz.Authorize(actor, authz.OpCreateFlight, nil); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	flight := &models.Flight{
		Destination: input.Destination,
		DepartTime:  input.DepartTime,
		TotalSeats:  input.TotalSeats,
	}

	err := s.flightRepo.CreateWithGeneratedCode(ctx, flight, func(sequence uint) (string, error) {
		return flightcode.Generate(input.Destination, sequence)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDestinationTooShort) {
			return nil, err
		}
		return nil, domain.StoreError(err)
	}

	log.Printf("✈️ Flight created: %s -> %s (%d seats)", flight.Code, flight.Destination, flight.TotalSeats)
	return flight.ToResponse(), nil
}

// ListAvailable returns future flights that still have a free seat. Any
// signed-in user may call this.
func (s *FlightService) ListAvailable(ctx context.Context) ([]*models.FlightResponse, error) {
	flights, err := s.flightRepo.ListAvailable(ctx, s.now())
	if err != nil {
		return nil, domain.StoreError(err)
	}
	return toFlightResponses(flights), nil
}

// ListAll returns every flight; staff only.
func (s *FlightService) ListAll(ctx context.Context, actor domain.Actor) ([]*models.FlightResponse, error) {
	if denial := authz.Authorize(actor, authz.OpListAllFlights, nil); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	flights, err := s.flightRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.StoreError(err)
	}
	return toFlightResponses(flights), nil
}

func toFlightResponses(flights []*models.Flight) []*models.FlightResponse {
	responses := make([]*models.FlightResponse, 0, len(flights))
	for _, flight := range flights {
		responses = append(responses, flight.ToResponse())
	}
	return responses
}
