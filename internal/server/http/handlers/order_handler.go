package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	shopID, err := optionalShopID(c.Query("shop_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	page := model.Page{Limit: queryInt(c, "limit"), Number: queryInt(c, "page")}

	result, err := h.facade.Orders(c.Request.Context(), CurrentUser(c), shopID, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderPageResponse(result))
}

// Show handles GET /api/orders/:id.
func (h *OrderHandler) Show(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toParentOrderResponse(order))
}

// Track handles GET /api/orders/track/:tracking_number.
func (h *OrderHandler) Track(c *gin.Context) {
	order, err := h.facade.TrackOrder(c.Request.Context(), CurrentUser(c), c.Param("tracking_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toParentOrderResponse(order))
}

// ChangeStatus handles PUT /api/orders/:id.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Status <= 0 {
		writeError(c, domainErrors.FieldErrors{"status": "status is required"})
		return
	}

	order, err := h.facade.ChangeOrderStatus(c.Request.Context(), CurrentUser(c), id, req.Status, req.ProofVoucherMedia)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toParentOrderResponse(order))
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Export handles GET /api/orders/export and GET /api/orders/export/:shop_id.
func (h *OrderHandler) Export(c *gin.Context) {
	shopID, err := optionalShopID(c.Param("shop_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	ds, err := h.facade.ExportStoreOrders(c.Request.Context(), CurrentUser(c), shopID)
	if err != nil {
		writeError(c, err)
		return
	}
	writeDataset(c, "orders", ds)
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                order.ID,
		TrackingNumber:    order.TrackingNumber,
		CustomerID:        order.CustomerID,
		ShopID:            order.ShopID,
		ParentID:          order.ParentID,
		Status:            order.StatusID,
		ProofVoucherMedia: order.ProofVoucherMedia,
		Amount:            order.Amount,
		Total:             order.Total,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func toParentOrderResponse(order *model.ParentOrder) dto.ParentOrderResponse {
	children := make([]dto.OrderResponse, 0, len(order.Children))
	for _, child := range order.Children {
		children = append(children, toOrderResponse(child))
	}
	return dto.ParentOrderResponse{OrderResponse: toOrderResponse(order.Order), Children: children}
}

func toOrderPageResponse(page *model.OrderPage) dto.OrderPageResponse {
	data := make([]dto.ParentOrderResponse, 0, len(page.Items))
	for i := range page.Items {
		data = append(data, toParentOrderResponse(&page.Items[i]))
	}
	return dto.OrderPageResponse{
		Data:        data,
		Total:       page.Total,
		PerPage:     page.Page.Limit,
		CurrentPage: page.Page.Number,
		LastPage:    page.LastPage(),
	}
}
