package app

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// HealthChecker reports availability of the backing database.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MarketplaceFacade exposes use cases to the transport layer.
type MarketplaceFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	marketing *usecase.MarketingUseCase
	catalog   *usecase.CatalogUseCase
	health    HealthChecker
}

func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	marketing *usecase.MarketingUseCase,
	catalog *usecase.CatalogUseCase,
	health HealthChecker,
) *MarketplaceFacade {
	return &MarketplaceFacade{auth: auth, orders: orders, marketing: marketing, catalog: catalog, health: health}
}

func (f *MarketplaceFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MarketplaceFacade) ResolveUser(ctx context.Context, token string) (*model.User, error) {
	return f.auth.ResolveUser(ctx, token)
}

func (f *MarketplaceFacade) UpdateIdentityDocument(ctx context.Context, userID int64, dni, documentPath string) error {
	return f.auth.UpdateIdentityDocument(ctx, userID, dni, documentPath)
}

func (f *MarketplaceFacade) Orders(ctx context.Context, user *model.User, shopID *int64, page model.Page) (*model.OrderPage, error) {
	return f.orders.List(ctx, user, shopID, page)
}

func (f *MarketplaceFacade) Order(ctx context.Context, user *model.User, id int64) (*model.ParentOrder, error) {
	return f.orders.Get(ctx, user, id)
}

func (f *MarketplaceFacade) TrackOrder(ctx context.Context, user *model.User, trackingNumber string) (*model.ParentOrder, error) {
	return f.orders.Track(ctx, user, trackingNumber)
}

func (f *MarketplaceFacade) ChangeOrderStatus(ctx context.Context, user *model.User, id, statusID int64, proof *string) (*model.ParentOrder, error) {
	return f.orders.Transition(ctx, user, id, statusID, proof)
}

func (f *MarketplaceFacade) DeleteOrder(ctx context.Context, user *model.User, id int64) error {
	return f.orders.Delete(ctx, user, id)
}

func (f *MarketplaceFacade) ExportStoreOrders(ctx context.Context, user *model.User, shopID *int64) (*model.Dataset, error) {
	return f.orders.ExportStoreOrders(ctx, user, shopID)
}

func (f *MarketplaceFacade) MarketingAssets(ctx context.Context) ([]model.MarketingAsset, error) {
	return f.marketing.List(ctx)
}

func (f *MarketplaceFacade) MarketingAsset(ctx context.Context, id int64) (*model.MarketingAsset, error) {
	return f.marketing.Get(ctx, id)
}

func (f *MarketplaceFacade) CreateMarketingAsset(ctx context.Context, user *model.User, upload model.MarketingUpload) (*model.MarketingAsset, error) {
	return f.marketing.Create(ctx, user, upload)
}

func (f *MarketplaceFacade) UpdateMarketingAsset(ctx context.Context, user *model.User, id int64, upload model.MarketingUpload) (*model.MarketingAsset, error) {
	return f.marketing.Update(ctx, user, id, upload)
}

func (f *MarketplaceFacade) ExportProducts(ctx context.Context, user *model.User) (*model.Dataset, error) {
	return f.catalog.ExportProducts(ctx, user)
}

func (f *MarketplaceFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
