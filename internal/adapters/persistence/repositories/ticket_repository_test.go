package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/core/domain"
)

// testDSN returns the MySQL DSN for integration tests. TEST_DATABASE_DSN
// overrides the docker-compose default.
func testDSN(t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		return dsn
	}
	return "skyfare:skyfare@tcp(localhost:3306)/skyfare_test?charset=utf8mb4&parseTime=True&loc=Local"
}

// setupTestDB opens the test database, skipping the test when none is
// reachable, and resets the tables. The row-locking paths need a real MySQL;
// an in-memory engine would reject the FOR UPDATE clause.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.Open(testDSN(t)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("test database unreachable, skipping: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("test database unreachable, skipping: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"tickets", "flights", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}

	return db
}

func seedPassengerAndFlight(t *testing.T, db *gorm.DB, totalSeats int) (*models.User, *models.Flight) {
	t.Helper()

	passenger := &models.User{
		Name:     "Ana",
		Username: "ana",
		Password: "blob",
		Role:     domain.RoleClient,
	}
	if err := db.Create(passenger).Error; err != nil {
		t.Fatalf("seed passenger: %v", err)
	}

	flight := &models.Flight{
		Code:        "BRA_1",
		Destination: "Brazil",
		DepartTime:  time.Now().Add(72 * time.Hour),
		TotalSeats:  totalSeats,
	}
	if err := db.Create(flight).Error; err != nil {
		t.Fatalf("seed flight: %v", err)
	}

	return passenger, flight
}

func TestCreateIfSeatAvailable_FillsToCapacity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	const totalSeats = 3
	passenger, flight := seedPassengerAndFlight(t, db, totalSeats)

	// Every seat up to and including the last must be granted.
	for i := 0; i < totalSeats; i++ {
		ticket := &models.Ticket{PassengerID: passenger.ID, FlightID: flight.ID}
		if err := repo.CreateIfSeatAvailable(ctx, ticket, totalSeats); err != nil {
			t.Fatalf("seat %d of %d: CreateIfSeatAvailable() error = %v", i+1, totalSeats, err)
		}
	}

	// One past capacity is rejected, and nothing is inserted for it.
	overflow := &models.Ticket{PassengerID: passenger.ID, FlightID: flight.ID}
	if err := repo.CreateIfSeatAvailable(ctx, overflow, totalSeats); !errors.Is(err, domain.ErrFlightFull) {
		t.Fatalf("overflow CreateIfSeatAvailable() error = %v, want ErrFlightFull", err)
	}

	var count int64
	if err := db.Model(&models.Ticket{}).Where("flight_id = ?", flight.ID).Count(&count).Error; err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	if count != totalSeats {
		t.Errorf("tickets on flight = %d, want %d", count, totalSeats)
	}
}

func TestCreateIfSeatAvailable_CanceledSeatFreesUp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	passenger, flight := seedPassengerAndFlight(t, db, 1)

	first := &models.Ticket{PassengerID: passenger.ID, FlightID: flight.ID}
	if err := repo.CreateIfSeatAvailable(ctx, first, flight.TotalSeats); err != nil {
		t.Fatalf("first purchase: %v", err)
	}

	blocked := &models.Ticket{PassengerID: passenger.ID, FlightID: flight.ID}
	if err := repo.CreateIfSeatAvailable(ctx, blocked, flight.TotalSeats); !errors.Is(err, domain.ErrFlightFull) {
		t.Fatalf("second purchase error = %v, want ErrFlightFull", err)
	}

	first.IsCanceled = true
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("cancel first ticket: %v", err)
	}

	retry := &models.Ticket{PassengerID: passenger.ID, FlightID: flight.ID}
	if err := repo.CreateIfSeatAvailable(ctx, retry, flight.TotalSeats); err != nil {
		t.Errorf("purchase after cancel error = %v, want nil", err)
	}
}

func TestCreateIfSeatAvailable_ConcurrentLastSeat(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	const buyers = 8
	passenger, flight := seedPassengerAndFlight(t, db, 1)

	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		go func() {
			ticket := &models.Ticket{PassengerID: passenger.ID, FlightID: flight.ID}
			errs <- repo.CreateIfSeatAvailable(ctx, ticket, flight.TotalSeats)
		}()
	}

	var granted, full int
	for i := 0; i < buyers; i++ {
		switch err := <-errs; {
		case err == nil:
			granted++
		case errors.Is(err, domain.ErrFlightFull):
			full++
		default:
			t.Fatalf("unexpected purchase error: %v", err)
		}
	}

	if granted != 1 || full != buyers-1 {
		t.Errorf("granted = %d, full = %d, want exactly 1 and %d", granted, full, buyers-1)
	}

	var count int64
	if err := db.Model(&models.Ticket{}).
		Where("flight_id = ? AND is_canceled = ?", flight.ID, false).
		Count(&count).Error; err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	if count != 1 {
		t.Errorf("tickets on flight = %d, want 1", count)
	}
}
