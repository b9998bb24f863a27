package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ansh808s/cause-drop/internal/pkg/response"
	"github.com/ansh808s/cause-drop/internal/uploader"
)

type UploadHandler struct {
	presigner *uploader.Presigner
}

func NewUploadHandler(presigner *uploader.Presigner) *UploadHandler {
	return &UploadHandler{presigner: presigner}
}

// SignedURL hands out a presigned PUT so the client uploads the campaign
// image straight to object storage.
func (h *UploadHandler) SignedURL(c *gin.Context) {
	contentType := c.Query("content_type")
	if contentType == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "content_type is required")
		return
	}
	signed, err := h.presigner.SignedPutURL(c.Request.Context(), getUserID(c), contentType)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "unsupported content type")
		return
	}
	response.Success(c, signed)
}
