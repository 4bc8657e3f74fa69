package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/core/domain"
)

// ticketRepository implements TicketRepository interface
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// CreateIfSeatAvailable admits the ticket only while the flight has a free
// seat. The flight row is locked FOR UPDATE for the duration of the
// count-then-insert, so two purchases racing for the last seat serialize and
// the loser gets domain.ErrFlightFull.
func (r *ticketRepository) CreateIfSeatAvailable(ctx context.Context, ticket *models.Ticket, totalSeats int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ticket.FlightID).
			First(&flight).Error
		if err != nil {
			return err
		}

		var occupied int64
		err = tx.Model(&models.Ticket{}).
			Where("flight_id = ? AND is_canceled = ?", ticket.FlightID, false).
			Count(&occupied).Error
		if err != nil {
			return err
		}

		if occupied >= int64(totalSeats) {
			return domain.ErrFlightFull
		}

		return tx.Create(ticket).Error
	})
}

// GetByID gets a ticket with its flight and passenger loaded
func (r *ticketRepository) GetByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Passenger").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListByPassenger lists a passenger's non-deleted tickets
func (r *ticketRepository) ListByPassenger(ctx context.Context, passengerID uint) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Flight").
		Preload("Passenger").
		Where("passenger_id = ? AND is_deleted = ?", passengerID, false).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CountFutureActiveByPassenger counts the passenger's live tickets on flights
// that have not departed yet
func (r *ticketRepository) CountFutureActiveByPassenger(ctx context.Context, passengerID uint, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Joins("JOIN flights ON flights.id = tickets.flight_id").
		Where("tickets.passenger_id = ? AND tickets.is_canceled = ? AND tickets.is_deleted = ?", passengerID, false, false).
		Where("flights.depart_time > ?", now).
		Count(&count).Error
	return count, err
}

// Update updates a ticket
func (r *ticketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// SoftDeleteByPassenger marks every ticket of the passenger as deleted
func (r *ticketRepository) SoftDeleteByPassenger(ctx context.Context, passengerID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("passenger_id = ? AND is_deleted = ?", passengerID, false).
		Update("is_deleted", true)
	return result.RowsAffected, result.Error
}

// OccupancyOfFutureFlights reports active ticket counts per upcoming flight
func (r *ticketRepository) OccupancyOfFutureFlights(ctx context.Context, now time.Time) ([]FlightOccupancy, error) {
	var rows []FlightOccupancy
	err := r.db.WithContext(ctx).
		Model(&models.Flight{}).
		Select("flights.id AS flight_id, flights.code AS code, flights.total_seats AS total_seats, "+
			"(SELECT COUNT(*) FROM tickets WHERE tickets.flight_id = flights.id AND tickets.is_canceled = ?) AS occupied", false).
		Where("flights.depart_time > ?", now).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
