package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/outreach-backend/internal/platform/apierr"
)

const internalErrorMessage = "internal server error"

// Envelope is the uniform body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		if err != nil {
			_ = c.Error(err)
		}
		msg = internalErrorMessage
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: msg, Code: code})
}

// RespondAPIError maps an *apierr.Error onto the envelope. Anything else is a 500.
func RespondAPIError(c *gin.Context, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		RespondError(c, status, ae.Code, ae)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: payload})
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: payload})
}
