package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ansh808s/cause-drop/internal/model"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/pkg/jwt"
	"github.com/ansh808s/cause-drop/internal/pkg/response"
)

const (
	ContextUserIDKey  = "user_id"
	ContextAddressKey = "address"
)

// UserResolver resolves a token's user id to a live row.
type UserResolver interface {
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

// JWTAuth gates protected routes. A missing token and an invalid token
// are reported distinctly, and valid claims must still resolve to a
// live user: a token minted for a deleted account stops working.
func JWTAuth(secret []byte, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "unauthorized", "access token required")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid_token", "invalid token")
			c.Abort()
			return
		}
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if appErr.IsNotFound(err) {
				response.Error(c, http.StatusNotFound, "not_found", "user not found")
			} else {
				response.Error(c, http.StatusInternalServerError, "internal", "internal error")
			}
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextAddressKey, user.Address)
		c.Next()
	}
}
