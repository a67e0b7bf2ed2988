package dto

import "time"

// OrderResponse is a single order row.
type OrderResponse struct {
	ID                int64     `json:"id"`
	TrackingNumber    string    `json:"tracking_number"`
	CustomerID        int64     `json:"customer_id"`
	ShopID            *int64    `json:"shop_id"`
	ParentID          *int64    `json:"parent_id"`
	Status            int64     `json:"status"`
	ProofVoucherMedia *string   `json:"id_proof_voucher_media"`
	Amount            float64   `json:"amount"`
	Total             float64   `json:"total"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ParentOrderResponse is an order with its child orders.
type ParentOrderResponse struct {
	OrderResponse
	Children []OrderResponse `json:"children"`
}

// OrderPageResponse is a paginated list of orders.
type OrderPageResponse struct {
	Data        []ParentOrderResponse `json:"data"`
	Total       int64                 `json:"total"`
	PerPage     int                   `json:"per_page"`
	CurrentPage int                   `json:"current_page"`
	LastPage    int                   `json:"last_page"`
}

// ChangeStatusRequest moves an order to another status.
type ChangeStatusRequest struct {
	Status            int64   `json:"status"`
	ProofVoucherMedia *string `json:"id_proof_voucher_media"`
}
