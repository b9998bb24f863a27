package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/service"
)

// ActionHandler serves the Solana Actions endpoints behind shareable
// donation links. Wallets and blink clients hit these cross-origin, so
// the protocol headers allow any origin regardless of the app allowlist.
type ActionHandler struct {
	donations *service.DonationService
}

func NewActionHandler(donations *service.DonationService) *ActionHandler {
	return &ActionHandler{donations: donations}
}

type actionError struct {
	Message string `json:"message"`
}

func setActionHeaders(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Encoding, Accept-Encoding")
	c.Writer.Header().Set("X-Action-Version", "2.1.3")
	c.Writer.Header().Set("X-Blockchain-Ids", "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp")
}

func (h *ActionHandler) GetAction(c *gin.Context) {
	setActionHeaders(c)
	meta, err := h.donations.ActionMetadata(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if appErr.IsNotFound(err) {
			c.JSON(http.StatusBadRequest, actionError{Message: "campaign doesn't exist"})
			return
		}
		c.JSON(http.StatusBadRequest, actionError{Message: "an unknown error occurred"})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (h *ActionHandler) Options(c *gin.Context) {
	setActionHeaders(c)
	c.JSON(http.StatusOK, nil)
}

type donateRequest struct {
	Account string `json:"account"`
}

func (h *ActionHandler) PostDonation(c *gin.Context) {
	setActionHeaders(c)
	var req donateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Account == "" {
		c.JSON(http.StatusBadRequest, actionError{Message: "account is required"})
		return
	}
	slug := c.Query("slug")
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if slug == "" || err != nil {
		c.JSON(http.StatusBadRequest, actionError{Message: "invalid donation parameters"})
		return
	}
	result, buildErr := h.donations.BuildDonation(c.Request.Context(), slug, req.Account, amount)
	if buildErr != nil {
		switch {
		case appErr.IsNotFound(buildErr):
			c.JSON(http.StatusBadRequest, actionError{Message: "campaign doesn't exist"})
		case buildErr == appErr.ErrInvalid:
			c.JSON(http.StatusBadRequest, actionError{Message: "invalid donation parameters"})
		default:
			c.JSON(http.StatusBadRequest, actionError{Message: "an unknown error occurred"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
