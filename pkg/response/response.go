package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewOKResp wraps data in the success envelope.
func NewOKResp(data any) Resp {
	return Resp{
		Message: MessageSuccess,
		Data:    data,
	}
}

// OK writes data as a 200 success envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Error writes a 400 envelope carrying the error message and optional
// field-level details. Data is never null in the body.
func Error(c *gin.Context, err error, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: 1,
		Message:   err.Error(),
		Data:      data,
	})
}

// InternalError writes a 500 envelope. The error itself is not exposed
// to the caller; log it at the call site.
func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalServerErrorCode,
		Message:   DefaultErrorMessage,
	})
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context) {
	statusEnvelope(c, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden writes a 403 envelope.
func Forbidden(c *gin.Context) {
	statusEnvelope(c, http.StatusForbidden, "Forbidden")
}

func statusEnvelope(c *gin.Context, status int, message string) {
	c.JSON(status, Resp{
		ErrorCode: status,
		Message:   message,
	})
}
