package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
)

// MarketingHandler manages marketing images.
type MarketingHandler struct {
	facade MarketingFacade
}

// NewMarketingHandler constructs MarketingHandler.
func NewMarketingHandler(facade MarketingFacade) *MarketingHandler {
	return &MarketingHandler{facade: facade}
}

// List handles GET /api/marketing.
func (h *MarketingHandler) List(c *gin.Context) {
	assets, err := h.facade.MarketingAssets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.MarketingResponse, 0, len(assets))
	for i := range assets {
		response = append(response, toMarketingResponse(&assets[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Show handles GET /api/marketing/:id.
func (h *MarketingHandler) Show(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	asset, err := h.facade.MarketingAsset(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMarketingResponse(asset))
}

// Create handles POST /api/marketing.
func (h *MarketingHandler) Create(c *gin.Context) {
	var req dto.MarketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	asset, err := h.facade.CreateMarketingAsset(c.Request.Context(), CurrentUser(c), toMarketingUpload(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMarketingResponse(asset))
}

// Update handles PUT /api/marketing/:id.
func (h *MarketingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req dto.MarketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	asset, err := h.facade.UpdateMarketingAsset(c.Request.Context(), CurrentUser(c), id, toMarketingUpload(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMarketingResponse(asset))
}

func toMarketingUpload(req dto.MarketingRequest) model.MarketingUpload {
	return model.MarketingUpload{
		Image:        req.Image,
		Area:         req.Area,
		Text:         req.Text,
		TextPosition: req.TextPosition,
	}
}

func toMarketingResponse(asset *model.MarketingAsset) dto.MarketingResponse {
	return dto.MarketingResponse{
		ID:           asset.ID,
		URL:          asset.URL,
		Area:         asset.Area,
		Text:         asset.Text,
		TextPosition: asset.TextPosition,
	}
}
