package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*model.ParentOrder, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.ParentOrder, error)
	List(ctx context.Context, scope model.OrderScope, page model.Page) (*model.OrderPage, error)
	// ApplyStatus persists status and proof onto the order and the status onto
	// every child atomically.
	ApplyStatus(ctx context.Context, order *model.ParentOrder, statusID int64, proof *string) error
	Delete(ctx context.Context, id int64) error
	ListByShops(ctx context.Context, shopIDs []int64) ([]model.Order, error)
}

// OrderStatusRepository provides access to order statuses.
type OrderStatusRepository interface {
	GetByID(ctx context.Context, id int64) (*model.OrderStatus, error)
}
