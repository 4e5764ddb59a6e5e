package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
}

// ErrorBody pairs a stable machine-readable code with a human message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{
		Status: status,
		Error:  ErrorBody{Code: code, Message: msg},
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
