package test

import (
	"context"
	"sort"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Login:        login,
		PasswordHash: passwordHash,
		Permissions:  model.NewPermissionSet(model.PermissionCustomer),
	}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// Add stores prepared user, assigning identifier when missing.
func (s *UserRepositoryStub) Add(user *model.User) *model.User {
	if s.Next == 0 {
		s.Next = 1
	}
	if user.ID == 0 {
		user.ID = s.Next
	}
	if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.Users[user.Login] = user
	s.ByID[user.ID] = user
	return user
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateIdentityDocument stores identity document on the user.
func (s *UserRepositoryStub) UpdateIdentityDocument(ctx context.Context, id int64, dni, documentPath string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.DNI = dni
	user.DNIDocumentPath = documentPath
	return nil
}

// ShopRepositoryStub keeps shops in-memory.
type ShopRepositoryStub struct {
	Shops               map[int64]*model.Shop
	GetByIDFn           func(context.Context, int64) (*model.Shop, error)
	ListActiveByOwnerFn func(context.Context, int64, *int64) ([]model.Shop, error)
	Err                 error
}

// NewShopRepositoryStub constructs stub with given shops.
func NewShopRepositoryStub(shops ...model.Shop) *ShopRepositoryStub {
	s := &ShopRepositoryStub{Shops: make(map[int64]*model.Shop, len(shops))}
	for i := range shops {
		shop := shops[i]
		s.Shops[shop.ID] = &shop
	}
	return s
}

// GetByID returns stored shop or not found.
func (s *ShopRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if shop, ok := s.Shops[id]; ok {
		return shop, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListActiveByOwner filters stored shops by owner, activity and optional id.
func (s *ShopRepositoryStub) ListActiveByOwner(ctx context.Context, ownerID int64, shopID *int64) ([]model.Shop, error) {
	if s.ListActiveByOwnerFn != nil {
		return s.ListActiveByOwnerFn(ctx, ownerID, shopID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Shop
	for _, shop := range s.Shops {
		if shop.OwnerID != ownerID || !shop.IsActive {
			continue
		}
		if shopID != nil && shop.ID != *shopID {
			continue
		}
		result = append(result, *shop)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// OrderStatusCall stores information about ApplyStatus invocations.
type OrderStatusCall struct {
	OrderID  int64
	StatusID int64
	Proof    *string
}

// OrderListCall stores information about List invocations.
type OrderListCall struct {
	Scope model.OrderScope
	Page  model.Page
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	GetByIDFn             func(context.Context, int64) (*model.ParentOrder, error)
	GetByTrackingNumberFn func(context.Context, string) (*model.ParentOrder, error)
	ListFn                func(context.Context, model.OrderScope, model.Page) (*model.OrderPage, error)
	ApplyStatusFn         func(context.Context, *model.ParentOrder, int64, *string) error
	DeleteFn              func(context.Context, int64) error
	ListByShopsFn         func(context.Context, []int64) ([]model.Order, error)

	Orders     map[int64]*model.ParentOrder
	ShopOrders []model.Order

	ApplyCalls []OrderStatusCall
	ListCalls  []OrderListCall
	Deleted    []int64
}

// NewOrderRepositoryStub constructs stub holding given orders.
func NewOrderRepositoryStub(orders ...model.ParentOrder) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[int64]*model.ParentOrder, len(orders))}
	for i := range orders {
		order := orders[i]
		s.Orders[order.ID] = &order
	}
	return s
}

// GetByID returns a copy of stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.ParentOrder, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		return copyOrder(order), nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTrackingNumber returns a copy of order with tracking number.
func (s *OrderRepositoryStub) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.ParentOrder, error) {
	if s.GetByTrackingNumberFn != nil {
		return s.GetByTrackingNumberFn(ctx, trackingNumber)
	}
	for _, order := range s.Orders {
		if order.TrackingNumber == trackingNumber {
			return copyOrder(order), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List records invocation and returns configured page.
func (s *OrderRepositoryStub) List(ctx context.Context, scope model.OrderScope, page model.Page) (*model.OrderPage, error) {
	s.ListCalls = append(s.ListCalls, OrderListCall{Scope: scope, Page: page})
	if s.ListFn != nil {
		return s.ListFn(ctx, scope, page)
	}
	return &model.OrderPage{Page: page}, nil
}

// ApplyStatus records invocation and updates stored order with children.
func (s *OrderRepositoryStub) ApplyStatus(ctx context.Context, order *model.ParentOrder, statusID int64, proof *string) error {
	s.ApplyCalls = append(s.ApplyCalls, OrderStatusCall{OrderID: order.ID, StatusID: statusID, Proof: proof})
	if s.ApplyStatusFn != nil {
		return s.ApplyStatusFn(ctx, order, statusID, proof)
	}
	if stored, ok := s.Orders[order.ID]; ok {
		stored.ApplyStatus(statusID, proof)
	}
	return nil
}

// Delete removes stored order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

// ListByShops returns configured shop orders of the given shops.
func (s *OrderRepositoryStub) ListByShops(ctx context.Context, shopIDs []int64) ([]model.Order, error) {
	if s.ListByShopsFn != nil {
		return s.ListByShopsFn(ctx, shopIDs)
	}
	wanted := make(map[int64]struct{}, len(shopIDs))
	for _, id := range shopIDs {
		wanted[id] = struct{}{}
	}
	var result []model.Order
	for _, order := range s.ShopOrders {
		if order.ShopID == nil {
			continue
		}
		if _, ok := wanted[*order.ShopID]; ok {
			result = append(result, order)
		}
	}
	return result, nil
}

func copyOrder(order *model.ParentOrder) *model.ParentOrder {
	cp := *order
	cp.Children = append(model.ChildOrders(nil), order.Children...)
	return &cp
}

// OrderStatusRepositoryStub keeps statuses in-memory.
type OrderStatusRepositoryStub struct {
	Statuses map[int64]*model.OrderStatus
	Err      error
}

// NewOrderStatusRepositoryStub constructs stub with given statuses.
func NewOrderStatusRepositoryStub(statuses ...model.OrderStatus) *OrderStatusRepositoryStub {
	s := &OrderStatusRepositoryStub{Statuses: make(map[int64]*model.OrderStatus, len(statuses))}
	for i := range statuses {
		status := statuses[i]
		s.Statuses[status.ID] = &status
	}
	return s
}

// GetByID returns stored status or not found.
func (s *OrderStatusRepositoryStub) GetByID(ctx context.Context, id int64) (*model.OrderStatus, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if status, ok := s.Statuses[id]; ok {
		return status, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarketingRepositoryStub keeps marketing assets in-memory.
type MarketingRepositoryStub struct {
	Assets    map[int64]*model.MarketingAsset
	Next      int64
	Err       error
	UpdateErr error
}

// NewMarketingRepositoryStub constructs stub with given assets.
func NewMarketingRepositoryStub(assets ...model.MarketingAsset) *MarketingRepositoryStub {
	s := &MarketingRepositoryStub{Assets: make(map[int64]*model.MarketingAsset, len(assets)), Next: 1}
	for i := range assets {
		asset := assets[i]
		s.Assets[asset.ID] = &asset
		if asset.ID >= s.Next {
			s.Next = asset.ID + 1
		}
	}
	return s
}

// Create stores asset assigning next identifier.
func (s *MarketingRepositoryStub) Create(ctx context.Context, asset *model.MarketingAsset) (*model.MarketingAsset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *asset
	created.ID = s.Next
	s.Next++
	s.Assets[created.ID] = &created
	return &created, nil
}

// GetByID returns a copy of stored asset.
func (s *MarketingRepositoryStub) GetByID(ctx context.Context, id int64) (*model.MarketingAsset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if asset, ok := s.Assets[id]; ok {
		cp := *asset
		return &cp, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored assets ordered by identifier.
func (s *MarketingRepositoryStub) List(ctx context.Context) ([]model.MarketingAsset, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.MarketingAsset, 0, len(s.Assets))
	for _, asset := range s.Assets {
		result = append(result, *asset)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update replaces stored asset.
func (s *MarketingRepositoryStub) Update(ctx context.Context, asset *model.MarketingAsset) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if _, ok := s.Assets[asset.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	cp := *asset
	s.Assets[asset.ID] = &cp
	return nil
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	ColumnNames []string
	Data        [][]string
	ColumnsErr  error
	RowsErr     error
	// RequestedColumns keeps the columns passed to Rows.
	RequestedColumns []string
}

// Columns returns configured column names.
func (s *ProductRepositoryStub) Columns(ctx context.Context) ([]string, error) {
	if s.ColumnsErr != nil {
		return nil, s.ColumnsErr
	}
	return s.ColumnNames, nil
}

// Rows returns configured rows.
func (s *ProductRepositoryStub) Rows(ctx context.Context, columns []string) ([][]string, error) {
	s.RequestedColumns = columns
	if s.RowsErr != nil {
		return nil, s.RowsErr
	}
	return s.Data, nil
}

var (
	_ repository.UserRepository        = (*UserRepositoryStub)(nil)
	_ repository.ShopRepository        = (*ShopRepositoryStub)(nil)
	_ repository.OrderRepository       = (*OrderRepositoryStub)(nil)
	_ repository.OrderStatusRepository = (*OrderStatusRepositoryStub)(nil)
	_ repository.MarketingRepository   = (*MarketingRepositoryStub)(nil)
	_ repository.ProductRepository     = (*ProductRepositoryStub)(nil)
)
