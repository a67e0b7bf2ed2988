package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// ShopRepository provides access to shops and their staff.
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	// ListActiveByOwner returns active shops of the owner, optionally narrowed to one shop.
	ListActiveByOwner(ctx context.Context, ownerID int64, shopID *int64) ([]model.Shop, error)
}
