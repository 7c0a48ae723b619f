package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/periodictables/restaurant-reservations/models"
)

// Conflict errors surfaced by seat/finish. Controllers map these to 400.
var (
	ErrTableOccupied    = &ConflictError{"table is already occupied"}
	ErrTableNotOccupied = &ConflictError{"table is not occupied"}
	ErrOverCapacity     = &ConflictError{"table capacity is less than the party size"}
	ErrAlreadySeated    = &ConflictError{"reservation is already seated"}
)

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// TableService owns table records and the paired table/reservation state
// changes. Seat and Finish each run in one transaction, and the table state
// flip is a guarded UPDATE keyed on the current status, so the table row and
// the reservation row can never disagree and two concurrent seat attempts on
// the same table cannot both succeed: the loser's UPDATE matches zero rows.
type TableService struct {
	db *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

// List returns every table ordered by name.
func (s *TableService) List() ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Order("table_name asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Create inserts a new table, Free and unassigned.
func (s *TableService) Create(table models.Table) (*models.Table, error) {
	table.ID = 0
	table.Status = models.TableFree
	table.ReservationID = nil
	if err := s.db.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// Read returns one table or gorm.ErrRecordNotFound.
func (s *TableService) Read(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// Seat assigns a reservation to a table and marks the reservation seated in
// a single transaction. The table must be Free, large enough for the party,
// and the reservation must not already be seated. The Free check is part of
// the UPDATE's WHERE clause rather than a prior read, so a concurrent seat
// that committed first leaves this one with zero matched rows.
func (s *TableService) Seat(tableID, reservationID uint) (*models.Table, error) {
	tx := s.db.Begin()

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var reservation models.Reservation
	if err := tx.First(&reservation, reservationID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if table.Capacity < reservation.People {
		tx.Rollback()
		return nil, ErrOverCapacity
	}
	if reservation.Status == models.StatusSeated {
		tx.Rollback()
		return nil, ErrAlreadySeated
	}

	result := tx.Model(&models.Table{}).
		Where("id = ? AND status = ?", tableID, models.TableFree).
		Updates(map[string]interface{}{
			"status":         models.TableOccupied,
			"reservation_id": reservation.ID,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to seat table: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrTableOccupied
	}

	reservation.Status = models.StatusSeated
	if err := tx.Save(&reservation).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if err := tx.First(&table, tableID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit seat transaction: %w", err)
	}
	return &table, nil
}

// Finish clears an Occupied table and marks its reservation finished, in a
// single transaction. Finishing a Free table is a conflict. Like Seat, the
// Occupied check rides in the UPDATE's WHERE clause so concurrent finishes
// cannot both clear the same seating.
func (s *TableService) Finish(tableID uint) (*models.Table, error) {
	tx := s.db.Begin()

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if table.ReservationID == nil {
		tx.Rollback()
		return nil, ErrTableNotOccupied
	}
	reservationID := *table.ReservationID

	result := tx.Model(&models.Table{}).
		Where("id = ? AND status = ? AND reservation_id = ?",
			tableID, models.TableOccupied, reservationID).
		Updates(map[string]interface{}{
			"status":         models.TableFree,
			"reservation_id": nil,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to free table: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrTableNotOccupied
	}

	var reservation models.Reservation
	if err := tx.First(&reservation, reservationID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	reservation.Status = models.StatusFinished
	if err := tx.Save(&reservation).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to finish reservation: %w", err)
	}

	if err := tx.First(&table, tableID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit finish transaction: %w", err)
	}
	return &table, nil
}
