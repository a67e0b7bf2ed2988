package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus is a named order state.
type OrderStatus struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Serial               int    `json:"serial"`
	RequiresProofVoucher bool   `json:"requires_proof_voucher"`
}

// Order is a single order row. A nil ParentID marks an aggregate order, a
// non-nil ParentID marks a shop-scoped child order.
type Order struct {
	ID                int64     `json:"id"`
	TrackingNumber    string    `json:"tracking_number"`
	CustomerID        int64     `json:"customer_id"`
	ShopID            *int64    `json:"shop_id"`
	ParentID          *int64    `json:"parent_id"`
	StatusID          int64     `json:"status"`
	ProofVoucherMedia *string   `json:"id_proof_voucher_media"`
	Amount            float64   `json:"amount"`
	Total             float64   `json:"total"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsChild reports whether the order belongs to a parent order.
func (o *Order) IsChild() bool {
	return o.ParentID != nil
}

// ParentOrder is an order together with its child orders. Children are
// plain orders, the hierarchy is never deeper than one level. An order loaded
// on its own, that is a child, has no children.
type ParentOrder struct {
	Order
	Children ChildOrders `json:"children"`
}

// ChildOrders is a list of child orders. It decodes from a JSON array and
// from a JSON string holding such an array.
type ChildOrders []Order

// UnmarshalJSON implements json.Unmarshaler.
func (c *ChildOrders) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = nil
		return nil
	}

	if data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return fmt.Errorf("decode children string: %w", err)
		}
		if encoded == "" {
			*c = nil
			return nil
		}
		data = []byte(encoded)
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return fmt.Errorf("decode children: %w", err)
	}
	*c = orders
	return nil
}

// ApplyStatus sets status on the order and every child. Proof, when given, is
// attached to the parent only.
func (p *ParentOrder) ApplyStatus(statusID int64, proof *string) {
	p.StatusID = statusID
	if proof != nil {
		p.ProofVoucherMedia = proof
	}
	for i := range p.Children {
		p.Children[i].StatusID = statusID
	}
}

// OrderExportFields lists columns of the store order export.
var OrderExportFields = []string{"id", "tracking_number", "amount", "total"}

// ExportRecord renders the order as a row of OrderExportFields.
func (o *Order) ExportRecord() []string {
	return []string{
		fmt.Sprintf("%d", o.ID),
		o.TrackingNumber,
		formatMoney(o.Amount),
		formatMoney(o.Total),
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
