package models

import "time"

// Reservation statuses. A reservation moves booked -> seated -> finished,
// or booked -> cancelled. "finished" is terminal.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"reservation_id"`
	FirstName       string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber    string    `gorm:"type:varchar(30);not null" json:"mobile_number"`
	ReservationDate string    `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          uint      `gorm:"not null" json:"people"`
	Status          string    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// IsFinished reports whether the reservation is in its terminal state.
func (r *Reservation) IsFinished() bool {
	return r.Status == StatusFinished
}

// ValidStatuses lists every status a reservation may be updated to.
func ValidStatuses() []string {
	return []string{StatusBooked, StatusCancelled, StatusSeated, StatusFinished}
}
