package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skyfare/internal/adapters/persistence/models"
)

// flightRepository implements FlightRepository interface
type flightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db *gorm.DB) FlightRepository {
	return &flightRepository{db: db}
}

// CreateWithGeneratedCode inserts the flight with a code minted from the
// current max flight id. The max-id read and the insert run in one
// transaction with the scanned rows locked, so two concurrent creations
// cannot observe the same sequence number.
func (r *flightRepository) CreateWithGeneratedCode(ctx context.Context, flight *models.Flight, generate func(sequence uint) (string, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint
		err := tx.Model(&models.Flight{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error
		if err != nil {
			return err
		}

		code, err := generate(maxID + 1)
		if err != nil {
			return err
		}
		flight.Code = code

		return tx.Create(flight).Error
	})
}

// GetByID gets a flight by ID
func (r *flightRepository) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// ListAll lists every flight
func (r *flightRepository) ListAll(ctx context.Context) ([]*models.Flight, error) {
	var flights []*models.Flight
	err := r.db.WithContext(ctx).Order("depart_time").Find(&flights).Error
	if err != nil {
		return nil, err
	}
	return flights, nil
}

// ListAvailable lists future flights that still have at least one free seat
func (r *flightRepository) ListAvailable(ctx context.Context, now time.Time) ([]*models.Flight, error) {
	var flights []*models.Flight
	err := r.db.WithContext(ctx).
		Where("depart_time > ?", now).
		Where("total_seats > (SELECT COUNT(*) FROM tickets WHERE tickets.flight_id = flights.id AND tickets.is_canceled = ?)", false).
		Order("depart_time").
		Find(&flights).Error
	if err != nil {
		return nil, err
	}
	return flights, nil
}
