package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ansh808s/cause-drop/internal/pkg/response"
	"github.com/ansh808s/cause-drop/internal/service"
)

type CampaignHandler struct {
	campaigns *service.CampaignService
	donations *service.DonationService
}

func NewCampaignHandler(campaigns *service.CampaignService, donations *service.DonationService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, donations: donations}
}

type campaignRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Recipient   string  `json:"recipient"`
	ImageURL    string  `json:"image_url"`
	Goal        float64 `json:"goal"`
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req campaignRequest
	if err := bindStrict(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	cp, err := h.campaigns.Create(c.Request.Context(), getUserID(c), service.CampaignCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Recipient:   req.Recipient,
		ImageURL:    req.ImageURL,
		GoalSOL:     req.Goal,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"campaign": cp})
}

func (h *CampaignHandler) Get(c *gin.Context) {
	detail, err := h.campaigns.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"campaign": detail})
}

func (h *CampaignHandler) ListMine(c *gin.Context) {
	list, err := h.campaigns.ListByUser(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"campaigns": list})
}

type activeRequest struct {
	Active bool `json:"active"`
}

func (h *CampaignHandler) SetActive(c *gin.Context) {
	var req activeRequest
	if err := bindStrict(c, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if err := h.campaigns.SetActive(c.Request.Context(), getUserID(c), c.Param("slug"), req.Active); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *CampaignHandler) ListDonations(c *gin.Context) {
	limit := uint(0)
	if value := c.Query("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = uint(parsed)
		}
	}
	rows, err := h.donations.ListByCampaign(c.Request.Context(), c.Param("slug"), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"donations": rows})
}
