package validators

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/periodictables/restaurant-reservations/models"
)

// Violation is a classified guard failure: an HTTP status class plus a
// message naming the offending field or rule. It satisfies error so it can
// flow through the usual error paths.
type Violation struct {
	Status  int
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

func badRequest(format string, args ...interface{}) *Violation {
	return &Violation{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Guard is one predicate check over a reservation payload. A nil result
// passes control to the next guard; a Violation stops the chain.
type Guard func(ReservationData) *Violation

// Run executes guards in order and returns the first failure, if any.
func Run(data ReservationData, guards ...Guard) *Violation {
	for _, guard := range guards {
		if v := guard(data); v != nil {
			return v
		}
	}
	return nil
}

// CreateReservation is the guard chain for POST /reservations.
func CreateReservation(data ReservationData) *Violation {
	return Run(data,
		HasRequiredFields,
		HasOnlyAllowedFields,
		ValidDate,
		ValidTime,
		ValidPartySize,
		NotTuesday,
		FutureDated,
		WithinOperatingHours,
		BookedOnCreate,
	)
}

// UpdateReservation is the guard chain for full edits. The creation status
// guard does not apply; the terminal-state check runs against the stored
// record in the controller.
func UpdateReservation(data ReservationData) *Violation {
	return Run(data,
		HasRequiredFields,
		HasOnlyAllowedFields,
		ValidDate,
		ValidTime,
		ValidPartySize,
		NotTuesday,
		FutureDated,
		WithinOperatingHours,
	)
}

func HasRequiredFields(data ReservationData) *Violation {
	for _, field := range requiredFields {
		v, ok := data[field]
		if !ok || v == nil || v == "" {
			return badRequest("missing field: %s", field)
		}
	}
	return nil
}

func HasOnlyAllowedFields(data ReservationData) *Violation {
	for field := range data {
		allowed := false
		for _, a := range allowedFields {
			if field == a {
				allowed = true
				break
			}
		}
		if !allowed {
			return badRequest("invalid field: %s", field)
		}
	}
	return nil
}

func ValidDate(data ReservationData) *Violation {
	date := data.str("reservation_date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return badRequest("reservation_date field formatted incorrectly: %s", date)
	}
	return nil
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func ValidTime(data ReservationData) *Violation {
	t := data.str("reservation_time")
	if !timePattern.MatchString(t) {
		return badRequest("reservation_time field formatted incorrectly: %s", t)
	}
	return nil
}

func ValidPartySize(data ReservationData) *Violation {
	if _, ok := data.People(); !ok {
		return badRequest("people field formatted incorrectly: %v. Needs to be a positive number.", data["people"])
	}
	return nil
}

func NotTuesday(data ReservationData) *Violation {
	date, err := time.ParseInLocation("2006-01-02", data.str("reservation_date"), Location())
	if err != nil {
		return badRequest("reservation_date field formatted incorrectly: %s", data.str("reservation_date"))
	}
	if date.Weekday() == time.Tuesday {
		return badRequest("The restaurant is closed on Tuesday.")
	}
	return nil
}

func FutureDated(data ReservationData) *Violation {
	moment, err := time.ParseInLocation("2006-01-02 15:04",
		data.str("reservation_date")+" "+data.str("reservation_time"), Location())
	if err != nil {
		return badRequest("reservation_date field formatted incorrectly: %s", data.str("reservation_date"))
	}
	if !moment.After(now()) {
		return badRequest("Reservation must be in the future.")
	}
	return nil
}

const (
	openingTime = 10*60 + 30
	closingTime = 21*60 + 30
)

func WithinOperatingHours(data ReservationData) *Violation {
	t := data.str("reservation_time")
	minutes := minuteOfDay(t)
	if minutes <= openingTime || minutes >= closingTime {
		return badRequest("Reservations are only allowed between 10:30am and 9:30pm")
	}
	return nil
}

func BookedOnCreate(data ReservationData) *Violation {
	status, ok := data["status"]
	if !ok || status == nil || status == "" {
		return nil
	}
	if status != models.StatusBooked {
		return badRequest("status cannot be set to %v when creating a new reservation.", status)
	}
	return nil
}

// ValidStatusValue checks a status-route value against the known statuses.
func ValidStatusValue(status string) *Violation {
	for _, valid := range models.ValidStatuses() {
		if status == valid {
			return nil
		}
	}
	return badRequest("invalid status: %s. Status must be one of these options: booked, cancelled, seated, finished", status)
}

// NotFinished rejects any edit of a reservation already in its terminal state.
func NotFinished(res *models.Reservation) *Violation {
	if res.IsFinished() {
		return badRequest("A finished reservation cannot be updated.")
	}
	return nil
}

// minuteOfDay assumes ValidTime already matched; a malformed value maps to -1
// and fails the hours check.
func minuteOfDay(t string) int {
	if !timePattern.MatchString(t) {
		return -1
	}
	var h, m int
	fmt.Sscanf(t, "%d:%d", &h, &m)
	return h*60 + m
}

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns the fixed restaurant time zone used for every date and
// time comparison. RESTAURANT_TZ overrides the default of
// America/Los_Angeles; an unknown zone falls back to UTC.
func Location() *time.Location {
	locOnce.Do(func() {
		name := os.Getenv("RESTAURANT_TZ")
		if name == "" {
			name = "America/Los_Angeles"
		}
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			loc = time.UTC
		}
	})
	return loc
}

// now is replaced in tests.
var now = func() time.Time {
	return time.Now().In(Location())
}
