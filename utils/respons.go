package utils

import (
	"github.com/gin-gonic/gin"
)

// DataResponse is the success envelope: every handler returns the record or
// list under a single "data" key.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the failure envelope carrying one human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, ErrorResponse{Error: err.Error()})
}
