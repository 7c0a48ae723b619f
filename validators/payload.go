package validators

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/periodictables/restaurant-reservations/models"
)

// ReservationData is the raw "data" object of a reservation request body.
// Guards inspect the map directly so that unknown fields and malformed
// values can be reported before anything is bound to a model.
type ReservationData map[string]interface{}

var requiredFields = []string{
	"first_name",
	"last_name",
	"mobile_number",
	"reservation_date",
	"reservation_time",
	"people",
}

var allowedFields = append(requiredFields,
	"status", "reservation_id", "created_at", "updated_at",
)

func (d ReservationData) str(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// People returns the party size as a positive integer when the payload
// carries one, accepting either a JSON number or a numeric string.
func (d ReservationData) People() (uint, bool) {
	switch v := d["people"].(type) {
	case float64:
		if v > 0 && v == float64(uint(v)) {
			return uint(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n > 0 {
			return uint(n), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}

// ToReservation maps the validated payload onto a model. Callers must have
// run the guard chain first; People is assumed parseable here.
func (d ReservationData) ToReservation() models.Reservation {
	people, _ := d.People()
	return models.Reservation{
		FirstName:       d.str("first_name"),
		LastName:        d.str("last_name"),
		MobileNumber:    d.str("mobile_number"),
		ReservationDate: d.str("reservation_date"),
		ReservationTime: d.str("reservation_time"),
		People:          people,
		Status:          d.str("status"),
	}
}
