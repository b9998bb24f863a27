package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ansh808s/cause-drop/internal/pkg/response"
	"github.com/ansh808s/cause-drop/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signinRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
	Message   string `json:"message"`
}

// bindStrict decodes the body rejecting unknown fields.
func bindStrict(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *AuthHandler) Challenge(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "address is required")
		return
	}
	response.Success(c, gin.H{"message": h.auth.Challenge(address)})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signinRequest
	if err := bindStrict(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.Address == "" || req.Signature == "" || req.Message == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "address, signature and message are required")
		return
	}
	user, token, err := h.auth.SignIn(c.Request.Context(), req.Address, req.Signature, req.Message)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "ctime": user.Ctime},
	})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", "access token required")
		return
	}
	user, err := h.auth.Verify(c.Request.Context(), token)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"valid": true,
		"user":  gin.H{"id": user.ID, "address": user.Address},
	})
}
