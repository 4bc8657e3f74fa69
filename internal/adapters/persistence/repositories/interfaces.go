package repositories

import (
	"context"
	"time"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	// FindByCredentials matches the stored credential blob exactly among
	// non-deleted users.
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// SetToken atomically replaces the user's session token (nil clears it).
	SetToken(ctx context.Context, userID uint, token *string) error
	// ClearToken clears the token wherever it is currently held and reports
	// how many rows matched.
	ClearToken(ctx context.Context, token string) (int64, error)
	ExistsActiveUsername(ctx context.Context, username string) (bool, error)
	// ClearTokensOfDeleted drops session tokens still attached to
	// soft-deleted users. Used by the janitor.
	ClearTokensOfDeleted(ctx context.Context) (int64, error)
}

// FlightRepository defines flight repository interface
type FlightRepository interface {
	// CreateWithGeneratedCode inserts the flight with a code derived from the
	// highest existing flight id, holding both steps in one transaction so
	// concurrent creations cannot mint the same code.
	CreateWithGeneratedCode(ctx context.Context, flight *models.Flight, generate func(sequence uint) (string, error)) error
	GetByID(ctx context.Context, id uint) (*models.Flight, error)
	ListAll(ctx context.Context) ([]*models.Flight, error)
	// ListAvailable returns future flights that still have a free seat.
	ListAvailable(ctx context.Context, now time.Time) ([]*models.Flight, error)
}

// FlightOccupancy pairs a flight with its current active ticket count.
type FlightOccupancy struct {
	FlightID   uint
	Code       string
	TotalSeats int
	Occupied   int64
}

// TicketRepository defines ticket repository interface
type TicketRepository interface {
	// CreateIfSeatAvailable counts the flight's active tickets and inserts
	// the new one inside a single transaction with the flight row locked,
	// returning domain.ErrFlightFull when occupancy has reached totalSeats.
	CreateIfSeatAvailable(ctx context.Context, ticket *models.Ticket, totalSeats int) error
	GetByID(ctx context.Context, id uint) (*models.Ticket, error)
	ListByPassenger(ctx context.Context, passengerID uint) ([]*models.Ticket, error)
	CountFutureActiveByPassenger(ctx context.Context, passengerID uint, now time.Time) (int64, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	// SoftDeleteByPassenger marks every ticket of the passenger deleted and
	// reports how many rows changed.
	SoftDeleteByPassenger(ctx context.Context, passengerID uint) (int64, error)
	// OccupancyOfFutureFlights reports active ticket counts per upcoming
	// flight. Used by the janitor to refresh gauges.
	OccupancyOfFutureFlights(ctx context.Context, now time.Time) ([]FlightOccupancy, error)
}
