package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/periodictables/restaurant-reservations/services"
	"github.com/periodictables/restaurant-reservations/utils"
)

var (
	errMissingData   = errors.New("request body must contain a data object")
	errMissingStatus = errors.New("missing field: status")
)

func notFoundErr(field, value string) error {
	return fmt.Errorf("%s: %s does not exist.", field, value)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps domain errors onto the HTTP taxonomy: unknown
// record -> 404, conflict -> 400, anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.ConflictError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &conflict):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
