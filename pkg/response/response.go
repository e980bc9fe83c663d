// Package response is the JSON envelope returned by every endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderledger/pkg/apperr"
)

const (
	CodeSuccess     = 0
	CodeParamError  = 400
	CodeNotFound    = 404
	CodeConflict    = 409
	CodeServerError = 500
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

// FromError maps a classified error onto the envelope. Internal errors keep
// a generic message; the cause goes to the log, not the client.
func FromError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		Error(c, CodeNotFound, err.Error())
	case apperr.KindConflict:
		Error(c, CodeConflict, err.Error())
	case apperr.KindInvalid:
		Error(c, CodeParamError, err.Error())
	default:
		Error(c, CodeServerError, "internal server error")
	}
}
