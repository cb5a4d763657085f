package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/outreach-backend/internal/http/response"
	"github.com/yungbote/outreach-backend/internal/platform/ctxutil"
)

const maxBodyBytes = 1 << 20

// requestUserID returns the authenticated caller, writing a 401 when absent.
func requestUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("authentication required"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func uuidParam(c *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, code, err)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes a JSON body into dst. Malformed bodies and failed binding
// rules are a 400. With optional set an empty body is accepted as-is.
func bindJSON(c *gin.Context, dst any, optional bool) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return false
	}
	return true
}
