package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/periodictables/restaurant-reservations/models"
	"github.com/periodictables/restaurant-reservations/services"
	"github.com/periodictables/restaurant-reservations/utils"
	"github.com/periodictables/restaurant-reservations/validators"
)

type ReservationController struct {
	service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{service: services.NewReservationService(db)}
}

// ListReservations -> GET /reservations?date=YYYY-MM-DD or ?mobile_number=FRAGMENT
func (rc *ReservationController) ListReservations(c *gin.Context) {
	date := c.Query("date")
	mobile := c.Query("mobile_number")

	switch {
	case date != "":
		reservations, err := rc.service.ListByDate(date)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondData(c, http.StatusOK, reservations)
	case mobile != "":
		reservations, err := rc.service.SearchByPhone(mobile)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondData(c, http.StatusOK, reservations)
	default:
		utils.RespondData(c, http.StatusOK, []models.Reservation{})
	}
}

// CreateReservation -> POST /reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	data, ok := bindReservationData(c)
	if !ok {
		return
	}

	if v := validators.CreateReservation(data); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}

	reservation, err := rc.service.Create(data.ToReservation())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d created for %s %s on %s %s",
		reservation.ID, reservation.FirstName, reservation.LastName,
		reservation.ReservationDate, reservation.ReservationTime)
	utils.RespondData(c, http.StatusCreated, reservation)
}

// GetReservation -> GET /reservations/:reservation_id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	reservation, ok := rc.lookup(c)
	if !ok {
		return
	}
	utils.RespondData(c, http.StatusOK, reservation)
}

// UpdateReservation -> PUT /reservations/:reservation_id, full edit.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	data, ok := bindReservationData(c)
	if !ok {
		return
	}

	if v := validators.UpdateReservation(data); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}

	reservation, ok := rc.lookup(c)
	if !ok {
		return
	}
	if v := validators.NotFinished(reservation); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}

	merged := data.ToReservation()
	merged.ID = reservation.ID
	merged.CreatedAt = reservation.CreatedAt
	if merged.Status == "" {
		merged.Status = reservation.Status
	}

	updated, err := rc.service.Update(&merged)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d updated", updated.ID)
	utils.RespondData(c, http.StatusOK, updated)
}

// UpdateReservationStatus -> PUT /reservations/:reservation_id/status,
// body {"data":{"status":"seated"}}. Cancellation goes through here too.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	data, ok := bindReservationData(c)
	if !ok {
		return
	}

	raw, present := data["status"]
	if !present || raw == nil || raw == "" {
		utils.RespondError(c, http.StatusBadRequest, errMissingStatus)
		return
	}
	status, _ := raw.(string)
	for field := range data {
		if field != "status" {
			utils.RespondError(c, http.StatusBadRequest, &validators.Violation{
				Status: http.StatusBadRequest, Message: "invalid field: " + field})
			return
		}
	}

	reservation, ok := rc.lookup(c)
	if !ok {
		return
	}
	if v := validators.ValidStatusValue(status); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}
	if v := validators.NotFinished(reservation); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}

	reservation.Status = status
	updated, err := rc.service.Update(reservation)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d status changed to %s", updated.ID, updated.Status)
	utils.RespondData(c, http.StatusOK, updated)
}

// lookup reads the reservation named by the path parameter, responding 404
// itself when the id is malformed or unknown.
func (rc *ReservationController) lookup(c *gin.Context) (*models.Reservation, bool) {
	idStr := c.Param("reservation_id")
	id, ok := parseID(idStr)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, notFoundErr("reservation_id", idStr))
		return nil, false
	}

	reservation, err := rc.service.Read(id)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, notFoundErr("reservation_id", idStr))
		return nil, false
	}
	return reservation, true
}

// bindReservationData unwraps the {"data": {...}} request envelope.
func bindReservationData(c *gin.Context) (validators.ReservationData, bool) {
	var body struct {
		Data validators.ReservationData `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}
	if body.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errMissingData)
		return nil, false
	}
	return body.Data, true
}
