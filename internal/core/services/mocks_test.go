package services

import (
	"context"
	"time"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/core/domain"
)

type mockUserRepo struct {
	createFn               func(ctx context.Context, user *models.User) error
	getByIDFn              func(ctx context.Context, id uint) (*models.User, error)
	getByTokenFn           func(ctx context.Context, token string) (*models.User, error)
	findByCredentialsFn    func(ctx context.Context, username, password string) (*models.User, error)
	listAllFn              func(ctx context.Context) ([]*models.User, error)
	listByRoleFn           func(ctx context.Context, role domain.Role) ([]*models.User, error)
	updateFn               func(ctx context.Context, user *models.User) error
	setTokenFn             func(ctx context.Context, userID uint, token *string) error
	clearTokenFn           func(ctx context.Context, token string) (int64, error)
	existsActiveUsernameFn func(ctx context.Context, username string) (bool, error)
	clearTokensOfDeletedFn func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	if m.findByCredentialsFn != nil {
		return m.findByCredentialsFn(ctx, username, password)
	}
	return nil, nil
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error) {
	if m.listByRoleFn != nil {
		return m.listByRoleFn(ctx, role)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) SetToken(ctx context.Context, userID uint, token *string) error {
	if m.setTokenFn != nil {
		return m.setTokenFn(ctx, userID, token)
	}
	return nil
}

func (m *mockUserRepo) ClearToken(ctx context.Context, token string) (int64, error) {
	if m.clearTokenFn != nil {
		return m.clearTokenFn(ctx, token)
	}
	return 0, nil
}

func (m *mockUserRepo) ExistsActiveUsername(ctx context.Context, username string) (bool, error) {
	if m.existsActiveUsernameFn != nil {
		return m.existsActiveUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) ClearTokensOfDeleted(ctx context.Context) (int64, error) {
	if m.clearTokensOfDeletedFn != nil {
		return m.clearTokensOfDeletedFn(ctx)
	}
	return 0, nil
}

type mockFlightRepo struct {
	createWithGeneratedCodeFn func(ctx context.Context, flight *models.Flight, generate func(sequence uint) (string, error)) error
	getByIDFn                 func(ctx context.Context, id uint) (*models.Flight, error)
	listAllFn                 func(ctx context.Context) ([]*models.Flight, error)
	listAvailableFn           func(ctx context.Context, now time.Time) ([]*models.Flight, error)
}

func (m *mockFlightRepo) CreateWithGeneratedCode(ctx context.Context, flight *models.Flight, generate func(sequence uint) (string, error)) error {
	if m.createWithGeneratedCodeFn != nil {
		return m.createWithGeneratedCodeFn(ctx, flight, generate)
	}
	return nil
}

func (m *mockFlightRepo) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockFlightRepo) ListAll(ctx context.Context) ([]*models.Flight, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockFlightRepo) ListAvailable(ctx context.Context, now time.Time) ([]*models.Flight, error) {
	if m.listAvailableFn != nil {
		return m.listAvailableFn(ctx, now)
	}
	return nil, nil
}

type mockTicketRepo struct {
	createIfSeatAvailableFn        func(ctx context.Context, ticket *models.Ticket, totalSeats int) error
	getByIDFn                      func(ctx context.Context, id uint) (*models.Ticket, error)
	listByPassengerFn              func(ctx context.Context, passengerID uint) ([]*models.Ticket, error)
	countFutureActiveByPassengerFn func(ctx context.Context, passengerID uint, now time.Time) (int64, error)
	updateFn                       func(ctx context.Context, ticket *models.Ticket) error
	softDeleteByPassengerFn        func(ctx context.Context, passengerID uint) (int64, error)
	occupancyOfFutureFlightsFn     func(ctx context.Context, now time.Time) ([]repositories.FlightOccupancy, error)
}

func (m *mockTicketRepo) CreateIfSeatAvailable(ctx context.Context, ticket *models.Ticket, totalSeats int) error {
	if m.createIfSeatAvailableFn != nil {
		return m.createIfSeatAvailableFn(ctx, ticket, totalSeats)
	}
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepo) ListByPassenger(ctx context.Context, passengerID uint) ([]*models.Ticket, error) {
	if m.listByPassengerFn != nil {
		return m.listByPassengerFn(ctx, passengerID)
	}
	return nil, nil
}

func (m *mockTicketRepo) CountFutureActiveByPassenger(ctx context.Context, passengerID uint, now time.Time) (int64, error) {
	if m.countFutureActiveByPassengerFn != nil {
		return m.countFutureActiveByPassengerFn(ctx, passengerID, now)
	}
	return 0, nil
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *models.Ticket) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepo) SoftDeleteByPassenger(ctx context.Context, passengerID uint) (int64, error) {
	if m.softDeleteByPassengerFn != nil {
		return m.softDeleteByPassengerFn(ctx, passengerID)
	}
	return 0, nil
}

func (m *mockTicketRepo) OccupancyOfFutureFlights(ctx context.Context, now time.Time) ([]repositories.FlightOccupancy, error) {
	if m.occupancyOfFutureFlightsFn != nil {
		return m.occupancyOfFutureFlightsFn(ctx, now)
	}
	return nil, nil
}

// --- compile-time interface checks ---
var _ repositories.UserRepository = (*mockUserRepo)(nil)
var _ repositories.FlightRepository = (*mockFlightRepo)(nil)
var _ repositories.TicketRepository = (*mockTicketRepo)(nil)
