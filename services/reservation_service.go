package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/periodictables/restaurant-reservations/models"
)

// ReservationService owns every read and write of reservation records. It
// never caches; each call goes to the database so concurrent requests always
// see committed state.
type ReservationService struct {
	db *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// ListByDate returns the reservations for one calendar date, earliest
// time first.
func (s *ReservationService) ListByDate(date string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.
		Where("reservation_date = ?", date).
		Order("reservation_time asc").
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// SearchByPhone matches the digits of fragment as a substring of each stored
// mobile number with all non-digit characters stripped. Formatting stored in
// the column ("555-123-4567" vs "(555) 123 4567") does not affect matching.
// Results come back newest reservation date first.
func (s *ReservationService) SearchByPhone(fragment string) ([]models.Reservation, error) {
	var all []models.Reservation
	err := s.db.Order("reservation_date desc").Find(&all).Error
	if err != nil {
		return nil, err
	}

	needle := digitsOnly(fragment)
	matched := make([]models.Reservation, 0)
	for _, res := range all {
		if strings.Contains(digitsOnly(res.MobileNumber), needle) {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

// Read returns one reservation or gorm.ErrRecordNotFound.
func (s *ReservationService) Read(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Create inserts a new reservation. Status is always booked on creation
// regardless of the payload; the guard chain has already rejected anything
// else explicit.
func (s *ReservationService) Create(reservation models.Reservation) (*models.Reservation, error) {
	reservation.ID = 0
	reservation.Status = models.StatusBooked
	if err := s.db.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Update persists the full record and returns the stored result. Used for
// both full edits and status patches after the caller merges fields into the
// previously read record.
func (s *ReservationService) Update(reservation *models.Reservation) (*models.Reservation, error) {
	if err := s.db.Save(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
