package models

import (
	"time"

	"gorm.io/gorm"

	"skyfare/internal/core/domain"
)

// User represents users table. Users are soft-deleted through the IsDeleted
// flag (not gorm's DeletedAt) because deleted rows must stay addressable for
// the ticket cascade and the username-uniqueness check.
type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"size:100;not null" json:"name"`
	Username  string      `gorm:"size:50;not null;index" json:"username"`
	Password  string      `gorm:"size:255;not null" json:"-"`
	Token     *string     `gorm:"size:64;index" json:"-"`
	Role      domain.Role `gorm:"size:20;not null;default:'CLIENT'" json:"role"`
	IsDeleted bool        `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Tickets []Ticket `gorm:"foreignKey:PassengerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ToActor converts a user row into the identity the core operates on.
func (u *User) ToActor() domain.Actor {
	return domain.Actor{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// Flight represents flights table. Code is assigned exactly once at creation
// inside the same transaction that inserts the row.
type Flight struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:30;uniqueIndex;not null" json:"code"`
	Destination string    `gorm:"size:100;not null" json:"destination"`
	DepartTime  time.Time `gorm:"not null;index" json:"depart_time"`
	TotalSeats  int       `gorm:"not null" json:"total_seats"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Tickets []Ticket `gorm:"foreignKey:FlightID" json:"-"`
}

func (Flight) TableName() string {
	return "flights"
}

// FlightResponse DTO
type FlightResponse struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Destination string    `json:"destination"`
	DepartTime  time.Time `json:"depart_time"`
	TotalSeats  int       `json:"total_seats"`
}

func (f *Flight) ToResponse() *FlightResponse {
	return &FlightResponse{
		ID:          f.ID,
		Code:        f.Code,
		Destination: f.Destination,
		DepartTime:  f.DepartTime,
		TotalSeats:  f.TotalSeats,
	}
}

// Ticket represents tickets table
type Ticket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PassengerID uint      `gorm:"not null;index" json:"passenger_id"`
	FlightID    uint      `gorm:"not null;index" json:"flight_id"`
	IsCanceled  bool      `gorm:"not null;default:false" json:"is_canceled"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Passenger *User   `gorm:"foreignKey:PassengerID" json:"-"`
	Flight    *Flight `gorm:"foreignKey:FlightID" json:"-"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// TicketResponse DTO. Flight and passenger details are flattened in the way
// the booking front end consumes them.
type TicketResponse struct {
	ID                uint       `json:"id"`
	PassengerID       uint       `json:"passenger_id"`
	PassengerName     string     `json:"passenger_name,omitempty"`
	FlightID          uint       `json:"flight_id"`
	FlightCode        string     `json:"flight_code,omitempty"`
	FlightDestination string     `json:"flight_destination,omitempty"`
	FlightDepartTime  *time.Time `json:"flight_depart_time,omitempty"`
	IsCanceled        bool       `json:"is_canceled"`
}

func (t *Ticket) ToResponse() *TicketResponse {
	resp := &TicketResponse{
		ID:          t.ID,
		PassengerID: t.PassengerID,
		FlightID:    t.FlightID,
		IsCanceled:  t.IsCanceled,
	}

	if t.Passenger != nil {
		resp.PassengerName = t.Passenger.Name
	}
	if t.Flight != nil {
		resp.FlightCode = t.Flight.Code
		resp.FlightDestination = t.Flight.Destination
		departTime := t.Flight.DepartTime
		resp.FlightDepartTime = &departTime
	}

	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Flight{},
		&Ticket{},
	)
}
