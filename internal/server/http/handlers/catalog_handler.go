package handlers

import "github.com/gin-gonic/gin"

// CatalogHandler exposes catalog exports.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// ExportProducts handles GET /api/products/export.
func (h *CatalogHandler) ExportProducts(c *gin.Context) {
	ds, err := h.facade.ExportProducts(c.Request.Context(), CurrentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	writeDataset(c, "products", ds)
}
