package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// MarketingRepository stores marketing assets.
type MarketingRepository interface {
	Create(ctx context.Context, asset *model.MarketingAsset) (*model.MarketingAsset, error)
	GetByID(ctx context.Context, id int64) (*model.MarketingAsset, error)
	List(ctx context.Context) ([]model.MarketingAsset, error)
	Update(ctx context.Context, asset *model.MarketingAsset) error
}
