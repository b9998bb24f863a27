package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/ansh808s/cause-drop/internal/middleware"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	if err != nil {
		requestID, _ := c.Get("request_id")
		logutil.GetLogger(c.Request.Context()).Warn("request failed",
			zap.Any("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
	}
	switch {
	case err == nil:
		return
	case err == appErr.ErrInvalidSignature:
		// decode failures and mismatches collapse into one outcome
		response.Error(c, http.StatusUnauthorized, "invalid_signature", "invalid signature")
	case err == appErr.ErrInvalidToken:
		response.Error(c, http.StatusUnauthorized, "invalid_token", "invalid token")
	case err == appErr.ErrUnauthorized:
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case err == appErr.ErrForbidden:
		response.Error(c, http.StatusForbidden, "forbidden", "forbidden")
	case err == appErr.ErrNotFound:
		response.Error(c, http.StatusNotFound, "not_found", "not found")
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
	case err == appErr.ErrConflict:
		response.Error(c, http.StatusConflict, "conflict", "conflict")
	default:
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}
