package validators

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/periodictables/restaurant-reservations/models"
)

// TableData is the raw "data" object of a table request body.
type TableData map[string]interface{}

func (d TableData) str(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func (d TableData) positiveInt(key string) (uint, bool) {
	switch v := d[key].(type) {
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

// Capacity returns the table capacity as a positive integer.
func (d TableData) Capacity() (uint, bool) {
	return d.positiveInt("capacity")
}

// ReservationID returns the reservation_id of a seat request.
func (d TableData) ReservationID() (uint, bool) {
	return d.positiveInt("reservation_id")
}

func onlyAllowedFields(data TableData, allowed ...string) *Violation {
	for field := range data {
		ok := false
		for _, a := range allowed {
			if field == a {
				ok = true
				break
			}
		}
		if !ok {
			return badRequest("invalid field: %s", field)
		}
	}
	return nil
}

// CreateTable is the guard chain for POST /tables.
func CreateTable(data TableData) *Violation {
	if v := onlyAllowedFields(data, "table_name", "capacity"); v != nil {
		return v
	}
	name := data.str("table_name")
	if name == "" {
		return badRequest("missing field: table_name")
	}
	if len(name) < 2 {
		return badRequest("table_name must be at least 2 characters: %s", name)
	}
	if _, ok := data["capacity"]; !ok {
		return badRequest("missing field: capacity")
	}
	if _, ok := data.Capacity(); !ok {
		return badRequest("capacity field formatted incorrectly: %v. Needs to be a positive number.", data["capacity"])
	}
	return nil
}

// SeatRequest validates the body of PUT /tables/:table_id/seat.
func SeatRequest(data TableData) *Violation {
	if v := onlyAllowedFields(data, "reservation_id"); v != nil {
		return v
	}
	if _, ok := data["reservation_id"]; !ok {
		return badRequest("missing field: reservation_id")
	}
	if _, ok := data.ReservationID(); !ok {
		return badRequest("reservation_id field formatted incorrectly: %v", data["reservation_id"])
	}
	return nil
}

// ToTable maps a validated payload onto a model; status defaults to Free.
func (d TableData) ToTable() models.Table {
	capacity, _ := d.Capacity()
	return models.Table{
		TableName: d.str("table_name"),
		Capacity:  capacity,
		Status:    models.TableFree,
	}
}
