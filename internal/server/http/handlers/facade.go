package handlers

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ResolveUser(ctx context.Context, token string) (*model.User, error)
	UpdateIdentityDocument(ctx context.Context, userID int64, dni, documentPath string) error
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, user *model.User, shopID *int64, page model.Page) (*model.OrderPage, error)
	Order(ctx context.Context, user *model.User, id int64) (*model.ParentOrder, error)
	TrackOrder(ctx context.Context, user *model.User, trackingNumber string) (*model.ParentOrder, error)
	ChangeOrderStatus(ctx context.Context, user *model.User, id, statusID int64, proof *string) (*model.ParentOrder, error)
	DeleteOrder(ctx context.Context, user *model.User, id int64) error
	ExportStoreOrders(ctx context.Context, user *model.User, shopID *int64) (*model.Dataset, error)
}

// MarketingFacade manages marketing assets.
type MarketingFacade interface {
	MarketingAssets(ctx context.Context) ([]model.MarketingAsset, error)
	MarketingAsset(ctx context.Context, id int64) (*model.MarketingAsset, error)
	CreateMarketingAsset(ctx context.Context, user *model.User, upload model.MarketingUpload) (*model.MarketingAsset, error)
	UpdateMarketingAsset(ctx context.Context, user *model.User, id int64, upload model.MarketingUpload) (*model.MarketingAsset, error)
}

// CatalogFacade exposes catalog exports.
type CatalogFacade interface {
	ExportProducts(ctx context.Context, user *model.User) (*model.Dataset, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	OrderFacade
	MarketingFacade
	CatalogFacade
	HealthFacade
}
