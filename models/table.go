package models

import "time"

// Table statuses. A table is Occupied exactly while it holds a reservation.
const (
	TableFree     = "Free"
	TableOccupied = "Occupied"
)

type Table struct {
	ID            uint      `gorm:"primaryKey" json:"table_id"`
	TableName     string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"table_name"`
	Capacity      uint      `gorm:"not null" json:"capacity"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Free'" json:"status"`
	ReservationID *uint     `gorm:"index" json:"reservation_id"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// IsFree reports whether the table can accept a new party.
func (t *Table) IsFree() bool {
	return t.Status == TableFree
}
