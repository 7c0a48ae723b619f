package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/periodictables/restaurant-reservations/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Reservation{}, &models.Table{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedReservation(t *testing.T, db *gorm.DB, res models.Reservation) models.Reservation {
	t.Helper()
	if res.Status == "" {
		res.Status = models.StatusBooked
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("failed to seed reservation: %v", err)
	}
	return res
}

func TestCreateForcesBookedStatus(t *testing.T) {
	svc := NewReservationService(setupTestDB(t))

	created, err := svc.Create(models.Reservation{
		FirstName:       "Morty",
		LastName:        "Smith",
		MobileNumber:    "555-123-4567",
		ReservationDate: "2030-06-14",
		ReservationTime: "18:00",
		People:          2,
		Status:          models.StatusSeated,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusBooked, created.Status)
	assert.NotZero(t, created.ID)
}

func TestCreateThenReadRoundTrip(t *testing.T) {
	svc := NewReservationService(setupTestDB(t))

	created, err := svc.Create(models.Reservation{
		FirstName:       "Summer",
		LastName:        "Smith",
		MobileNumber:    "(202) 555-0164",
		ReservationDate: "2030-06-14",
		ReservationTime: "18:00",
		People:          3,
	})
	assert.NoError(t, err)

	read, err := svc.Read(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.FirstName, read.FirstName)
	assert.Equal(t, created.MobileNumber, read.MobileNumber)
	assert.Equal(t, created.ReservationDate, read.ReservationDate)
	assert.Equal(t, created.ReservationTime, read.ReservationTime)
	assert.Equal(t, created.People, read.People)
	assert.Equal(t, models.StatusBooked, read.Status)
}

func TestReadUnknownID(t *testing.T) {
	svc := NewReservationService(setupTestDB(t))

	_, err := svc.Read(999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListByDateOrdersByTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReservationService(db)

	seedReservation(t, db, models.Reservation{FirstName: "C", LastName: "X", MobileNumber: "1", ReservationDate: "2030-06-14", ReservationTime: "20:00", People: 2})
	seedReservation(t, db, models.Reservation{FirstName: "A", LastName: "X", MobileNumber: "2", ReservationDate: "2030-06-14", ReservationTime: "11:00", People: 2})
	seedReservation(t, db, models.Reservation{FirstName: "B", LastName: "X", MobileNumber: "3", ReservationDate: "2030-06-14", ReservationTime: "17:30", People: 2})
	seedReservation(t, db, models.Reservation{FirstName: "D", LastName: "X", MobileNumber: "4", ReservationDate: "2030-06-15", ReservationTime: "12:00", People: 2})

	list, err := svc.ListByDate("2030-06-14")
	assert.NoError(t, err)
	if assert.Len(t, list, 3) {
		assert.Equal(t, "11:00", list[0].ReservationTime)
		assert.Equal(t, "17:30", list[1].ReservationTime)
		assert.Equal(t, "20:00", list[2].ReservationTime)
	}
}

func TestListByDateEmpty(t *testing.T) {
	svc := NewReservationService(setupTestDB(t))

	list, err := svc.ListByDate("2030-01-01")
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestSearchByPhoneNormalizesDigits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReservationService(db)

	seedReservation(t, db, models.Reservation{FirstName: "A", LastName: "X", MobileNumber: "555-123-4567", ReservationDate: "2030-06-14", ReservationTime: "18:00", People: 2})
	seedReservation(t, db, models.Reservation{FirstName: "B", LastName: "Y", MobileNumber: "444-555-0000", ReservationDate: "2030-06-16", ReservationTime: "18:00", People: 2})
	seedReservation(t, db, models.Reservation{FirstName: "C", LastName: "Z", MobileNumber: "(212) 867-5309", ReservationDate: "2030-06-15", ReservationTime: "18:00", People: 2})

	matched, err := svc.SearchByPhone("555")
	assert.NoError(t, err)
	if assert.Len(t, matched, 2) {
		// newest reservation date first
		assert.Equal(t, "444-555-0000", matched[0].MobileNumber)
		assert.Equal(t, "555-123-4567", matched[1].MobileNumber)
	}

	matched, err = svc.SearchByPhone("8675309")
	assert.NoError(t, err)
	if assert.Len(t, matched, 1) {
		assert.Equal(t, "(212) 867-5309", matched[0].MobileNumber)
	}

	matched, err = svc.SearchByPhone("999")
	assert.NoError(t, err)
	assert.Empty(t, matched)
}

func TestUpdatePersistsFullRecord(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReservationService(db)

	res := seedReservation(t, db, models.Reservation{FirstName: "Beth", LastName: "Smith", MobileNumber: "555-0001", ReservationDate: "2030-06-14", ReservationTime: "18:00", People: 2})

	res.People = 5
	res.ReservationTime = "19:00"
	updated, err := svc.Update(&res)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), updated.People)

	read, err := svc.Read(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, uint(5), read.People)
	assert.Equal(t, "19:00", read.ReservationTime)
}
