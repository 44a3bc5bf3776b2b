package restapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorCode is a stable machine readable error identifier of the JSON API.
type ErrorCode string

const (
	ErrorCodeMalformedJSON     ErrorCode = "MALFORMED_JSON"
	ErrorCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeSessionClosed     ErrorCode = "SESSION_CLOSED"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// HTTPStatusCode maps the code to a response status.
func (e ErrorCode) HTTPStatusCode() int {
	switch e {
	case ErrorCodeMalformedJSON, ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrorCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrorCodeSessionClosed:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// ErrorDetail описывает ошибку API.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewErrorResponse creates an error response stamped with the current time.
func NewErrorResponse(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC(),
	}
}

// writeJSON encodes body with jsoniter and writes it with the given status.
func writeJSON(c *gin.Context, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

func abortWithError(c *gin.Context, code ErrorCode, message, details string) {
	writeJSON(c, code.HTTPStatusCode(), NewErrorResponse(code, message, details))
	c.Abort()
}
