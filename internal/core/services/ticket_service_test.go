package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/core/domain"
)

func newTicketService(userRepo *mockUserRepo, flightRepo *mockFlightRepo, ticketRepo *mockTicketRepo) *TicketService {
	if userRepo == nil {
		userRepo = &mockUserRepo{}
	}
	if flightRepo == nil {
		flightRepo = &mockFlightRepo{}
	}
	if ticketRepo == nil {
		ticketRepo = &mockTicketRepo{}
	}
	return NewTicketService(ticketRepo, flightRepo, userRepo)
}

func TestPurchase_IssuesTicket(t *testing.T) {
	depart := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Ana", Username: "ana", Role: domain.RoleClient}, nil
		},
	}
	flightRepo := &mockFlightRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Flight, error) {
			return &models.Flight{ID: id, Code: "BRA_1", Destination: "Brazil", DepartTime: depart, TotalSeats: 100}, nil
		},
	}

	var insertedSeats int
	ticketRepo := &mockTicketRepo{
		createIfSeatAvailableFn: func(ctx context.Context, ticket *models.Ticket, totalSeats int) error {
			ticket.ID = 55
			insertedSeats = totalSeats
			return nil
		},
	}

	svc := newTicketService(userRepo, flightRepo, ticketRepo)
	resp, err := svc.Purchase(context.Background(), client(3), &PurchaseInput{PassengerID: 3, FlightID: 8})
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}

	if insertedSeats != 100 {
		t.Errorf("capacity passed to insert = %d, want 100", insertedSeats)
	}
	if resp.ID != 55 || resp.FlightCode != "BRA_1" || resp.PassengerName != "Ana" {
		t.Errorf("response = %+v", resp)
	}
}

func TestPurchase_CheckOrder(t *testing.T) {
	// The passenger check must win over the flight check, and both must win
	// over authorization. A client buying for a missing stranger sees 404,
	// not 403.
	depart := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		actor       domain.Actor
		passengerID uint
		userMissing bool
		userDeleted bool
		missFlight  bool
		full        bool
		wantErr     error
	}{
		{"unknown passenger wins over denial", client(3), 9, true, false, true, false, domain.ErrPassengerNotFound},
		{"deleted passenger looks absent", client(3), 9, false, true, false, false, domain.ErrPassengerNotFound},
		{"unknown flight wins over denial", client(3), 9, false, false, true, false, domain.ErrFlightNotFound},
		{"client buying for stranger", client(3), 9, false, false, false, false, domain.ErrForbidden},
		{"full flight", client(3), 3, false, false, false, true, domain.ErrFlightFull},
		{"employee buys for client", employee(), 9, false, false, false, true, domain.ErrFlightFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepo{
				getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
					if tt.userMissing {
						return nil, gorm.ErrRecordNotFound
					}
					return &models.User{ID: id, Username: "ana", Role: domain.RoleClient, IsDeleted: tt.userDeleted}, nil
				},
			}
			flightRepo := &mockFlightRepo{
				getByIDFn: func(ctx context.Context, id uint) (*models.Flight, error) {
					if tt.missFlight {
						return nil, gorm.ErrRecordNotFound
					}
					return &models.Flight{ID: id, Code: "BRA_1", DepartTime: depart, TotalSeats: 1}, nil
				},
			}
			ticketRepo := &mockTicketRepo{
				createIfSeatAvailableFn: func(ctx context.Context, ticket *models.Ticket, totalSeats int) error {
					if tt.full {
						return domain.ErrFlightFull
					}
					return nil
				},
			}

			svc := newTicketService(userRepo, flightRepo, ticketRepo)
			_, err := svc.Purchase(context.Background(), tt.actor, &PurchaseInput{PassengerID: tt.passengerID, FlightID: 8})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Purchase() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCancel_FlipsTicket(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	depart := now.Add(48 * time.Hour)

	var saved *models.Ticket
	ticketRepo := &mockTicketRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.Ticket, error) {
			return &models.Ticket{
				ID:          id,
				PassengerID: 3,
				FlightID:    8,
				Flight:      &models.Flight{ID: 8, Code: "BRA_1", DepartTime: depart},
			}, nil
		},
		updateFn: func(ctx context.Context, ticket *models.Ticket) error {
			saved = ticket
			return nil
		},
	}

	svc := newTicketService(nil, nil, ticketRepo)
	svc.now = func() time.Time { return now }

	resp, err := svc.Cancel(context.Background(), client(3), 55)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if saved == nil || !saved.IsCanceled {
		t.Error("ticket not persisted as canceled")
	}
	if !resp.IsCanceled {
		t.Error("response not marked canceled")
	}
}

func TestCancel_Rejections(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		actor   domain.Actor
		ticket  *models.Ticket
		wantErr error
	}{
		{
			name:    "unknown ticket",
			actor:   client(3),
			ticket:  nil,
			wantErr: domain.ErrTicketNotFound,
		},
		{
			name:  "deleted ticket looks absent",
			actor: client(3),
			ticket: &models.Ticket{
				ID: 55, PassengerID: 3, IsDeleted: true, IsCanceled: true,
				Flight: &models.Flight{DepartTime: now.Add(72 * time.Hour)},
			},
			wantErr: domain.ErrTicketNotFound,
		},
		{
			name:  "already canceled wins over deadline",
			actor: client(3),
			ticket: &models.Ticket{
				ID: 55, PassengerID: 3, IsCanceled: true,
				Flight: &models.Flight{DepartTime: now.Add(time.Hour)},
			},
			wantErr: domain.ErrAlreadyCanceled,
		},
		{
			name:  "exactly at the deadline",
			actor: client(3),
			ticket: &models.Ticket{
				ID: 55, PassengerID: 3,
				Flight: &models.Flight{DepartTime: now.Add(CancelWindow)},
			},
			wantErr: domain.ErrTooLateToCancel,
		},
		{
			name:  "deadline wins over ownership",
			actor: client(4),
			ticket: &models.Ticket{
				ID: 55, PassengerID: 3,
				Flight: &models.Flight{DepartTime: now.Add(time.Hour)},
			},
			wantErr: domain.ErrTooLateToCancel,
		},
		{
			name:  "client canceling another's ticket",
			actor: client(4),
			ticket: &models.Ticket{
				ID: 55, PassengerID: 3,
				Flight: &models.Flight{DepartTime: now.Add(72 * time.Hour)},
			},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketRepo := &mockTicketRepo{
				getByIDFn: func(ctx context.Context, id uint) (*models.Ticket, error) {
					if tt.ticket == nil {
						return nil, gorm.ErrRecordNotFound
					}
					return tt.ticket, nil
				},
			}

			svc := newTicketService(nil, nil, ticketRepo)
			svc.now = func() time.Time { return now }

			_, err := svc.Cancel(context.Background(), tt.actor, 55)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Cancel() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestListByUser(t *testing.T) {
	userRepo := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			if id == 99 {
				return nil, gorm.ErrRecordNotFound
			}
			return &models.User{ID: id, Username: "ana", Role: domain.RoleClient}, nil
		},
	}
	ticketRepo := &mockTicketRepo{
		listByPassengerFn: func(ctx context.Context, passengerID uint) ([]*models.Ticket, error) {
			return []*models.Ticket{{ID: 1, PassengerID: passengerID}, {ID: 2, PassengerID: passengerID}}, nil
		},
	}
	svc := newTicketService(userRepo, nil, ticketRepo)

	tickets, err := svc.ListByUser(context.Background(), client(3), 3)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(tickets) != 2 {
		t.Errorf("got %d tickets, want 2", len(tickets))
	}

	if _, err := svc.ListByUser(context.Background(), client(3), 4); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other user's tickets error = %v, want forbidden", err)
	}

	if _, err := svc.ListByUser(context.Background(), employee(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
}
