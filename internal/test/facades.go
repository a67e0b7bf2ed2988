package test

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ResolveFn      func(context.Context, string) (*model.User, error)
	UpdateDNIFn    func(context.Context, int64, string, string) error
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ResolveUser returns a customer unless overridden.
func (s AuthFacadeStub) ResolveUser(ctx context.Context, token string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return &model.User{ID: 1, Login: "customer", Permissions: model.NewPermissionSet(model.PermissionCustomer)}, nil
}

// UpdateIdentityDocument accepts any document unless overridden.
func (s AuthFacadeStub) UpdateIdentityDocument(ctx context.Context, userID int64, dni, documentPath string) error {
	if s.UpdateDNIFn != nil {
		return s.UpdateDNIFn(ctx, userID, dni, documentPath)
	}
	return nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn       func(context.Context, *model.User, *int64, model.Page) (*model.OrderPage, error)
	OrderFn        func(context.Context, *model.User, int64) (*model.ParentOrder, error)
	TrackFn        func(context.Context, *model.User, string) (*model.ParentOrder, error)
	ChangeStatusFn func(context.Context, *model.User, int64, int64, *string) (*model.ParentOrder, error)
	DeleteFn       func(context.Context, *model.User, int64) error
	ExportFn       func(context.Context, *model.User, *int64) (*model.Dataset, error)
}

// Orders delegates to provided function or returns an empty page.
func (s OrderFacadeStub) Orders(ctx context.Context, user *model.User, shopID *int64, page model.Page) (*model.OrderPage, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, user, shopID, page)
	}
	return &model.OrderPage{Page: page.Normalize(model.DefaultPageLimit)}, nil
}

// Order returns predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, user *model.User, id int64) (*model.ParentOrder, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, user, id)
	}
	return &model.ParentOrder{Order: model.Order{ID: id, CustomerID: user.ID}}, nil
}

// TrackOrder returns predefined order with given tracking number.
func (s OrderFacadeStub) TrackOrder(ctx context.Context, user *model.User, trackingNumber string) (*model.ParentOrder, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, user, trackingNumber)
	}
	return &model.ParentOrder{Order: model.Order{ID: 1, TrackingNumber: trackingNumber, CustomerID: user.ID}}, nil
}

// ChangeOrderStatus returns order moved to the requested status.
func (s OrderFacadeStub) ChangeOrderStatus(ctx context.Context, user *model.User, id, statusID int64, proof *string) (*model.ParentOrder, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, user, id, statusID, proof)
	}
	order := &model.ParentOrder{Order: model.Order{ID: id}}
	order.ApplyStatus(statusID, proof)
	return order, nil
}

// DeleteOrder executes configured handler.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, user *model.User, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, user, id)
	}
	return nil
}

// ExportStoreOrders returns configured dataset or an empty one.
func (s OrderFacadeStub) ExportStoreOrders(ctx context.Context, user *model.User, shopID *int64) (*model.Dataset, error) {
	if s.ExportFn != nil {
		return s.ExportFn(ctx, user, shopID)
	}
	return &model.Dataset{Columns: model.OrderExportFields}, nil
}

// MarketingFacadeStub simulates marketing asset operations.
type MarketingFacadeStub struct {
	ListFn   func(context.Context) ([]model.MarketingAsset, error)
	GetFn    func(context.Context, int64) (*model.MarketingAsset, error)
	CreateFn func(context.Context, *model.User, model.MarketingUpload) (*model.MarketingAsset, error)
	UpdateFn func(context.Context, *model.User, int64, model.MarketingUpload) (*model.MarketingAsset, error)
}

// MarketingAssets returns configured assets.
func (s MarketingFacadeStub) MarketingAssets(ctx context.Context) ([]model.MarketingAsset, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.MarketingAsset{{ID: 1, URL: "/storage/banner.png", Area: "home"}}, nil
}

// MarketingAsset returns configured asset.
func (s MarketingFacadeStub) MarketingAsset(ctx context.Context, id int64) (*model.MarketingAsset, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.MarketingAsset{ID: id, URL: "/storage/banner.png", Area: "home"}, nil
}

// CreateMarketingAsset returns asset built from upload.
func (s MarketingFacadeStub) CreateMarketingAsset(ctx context.Context, user *model.User, upload model.MarketingUpload) (*model.MarketingAsset, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user, upload)
	}
	return &model.MarketingAsset{ID: 1, URL: "/storage/" + upload.Area + ".png", Area: upload.Area}, nil
}

// UpdateMarketingAsset returns asset built from upload.
func (s MarketingFacadeStub) UpdateMarketingAsset(ctx context.Context, user *model.User, id int64, upload model.MarketingUpload) (*model.MarketingAsset, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, user, id, upload)
	}
	return &model.MarketingAsset{ID: id, URL: "/storage/" + upload.Area + ".png", Area: upload.Area}, nil
}

// CatalogFacadeStub simulates catalog exports.
type CatalogFacadeStub struct {
	ExportProductsFn func(context.Context, *model.User) (*model.Dataset, error)
}

// ExportProducts returns configured dataset.
func (s CatalogFacadeStub) ExportProducts(ctx context.Context, user *model.User) (*model.Dataset, error) {
	if s.ExportProductsFn != nil {
		return s.ExportProductsFn(ctx, user)
	}
	return &model.Dataset{Name: "products", Columns: []string{"name", "price"}, Rows: [][]string{{"Tea", "2.50"}}}, nil
}

// HealthFacadeStub reports configured health.
type HealthFacadeStub struct {
	Err error
}

// Health returns configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// MarketplaceFacadeStub aggregates facade dependencies for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	MarketingFacadeStub
	CatalogFacadeStub
	HealthFacadeStub
}
