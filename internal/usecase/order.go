package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/marketplace/internal/config"
	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/metrics"
)

// OrderUseCase encapsulates order visibility and lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	statuses  repository.OrderStatusRepository
	shops     repository.ShopRepository
	access    *AccessResolver
	logger    *slog.Logger
	pageLimit int
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	statuses repository.OrderStatusRepository,
	shops repository.ShopRepository,
	access *AccessResolver,
	cfg *config.Config,
	logger *slog.Logger,
) *OrderUseCase {
	pageLimit := model.DefaultPageLimit
	if cfg != nil && cfg.PageLimit > 0 {
		pageLimit = cfg.PageLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{
		orders:    orders,
		statuses:  statuses,
		shops:     shops,
		access:    access,
		logger:    logger,
		pageLimit: pageLimit,
	}
}

// Scope narrows order listing to the rows user is entitled to see.
func (u *OrderUseCase) Scope(ctx context.Context, user *model.User, shopID *int64) (model.OrderScope, error) {
	if user == nil {
		return model.OrderScope{}, domainErrors.ErrNotAuthorized
	}

	if shopID == nil && user.IsElevated() {
		return model.OrderScope{Kind: model.ScopeAllParents}, nil
	}

	if shopID != nil {
		ok, err := u.access.HasAccess(ctx, user, shopID)
		if err != nil {
			return model.OrderScope{}, err
		}
		if ok {
			if !user.Permissions.HasAny(model.ShopPermissions) {
				return model.OrderScope{}, domainErrors.ErrNotAuthorized
			}
			return model.OrderScope{Kind: model.ScopeShopChildren, ShopID: *shopID}, nil
		}
	}

	return model.OrderScope{Kind: model.ScopeCustomerParents, CustomerID: user.ID}, nil
}

// List returns a page of orders visible to user.
func (u *OrderUseCase) List(ctx context.Context, user *model.User, shopID *int64, page model.Page) (*model.OrderPage, error) {
	scope, err := u.Scope(ctx, user, shopID)
	if err != nil {
		return nil, err
	}
	return u.orders.List(ctx, scope, page.Normalize(u.pageLimit))
}

// Get returns a single order with its children.
func (u *OrderUseCase) Get(ctx context.Context, user *model.User, id int64) (*model.ParentOrder, error) {
	if user == nil {
		return nil, domainErrors.ErrNotAuthorized
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.IsElevated() {
		return order, nil
	}
	if order.ShopID != nil {
		ok, err := u.access.HasAccess(ctx, user, order.ShopID)
		if err != nil {
			return nil, err
		}
		if ok {
			return order, nil
		}
	}
	if order.CustomerID == user.ID {
		return order, nil
	}
	return nil, domainErrors.ErrNotAuthorized
}

// Track finds an order by tracking number for its customer or a super admin.
// Foreign orders are reported as not found.
func (u *OrderUseCase) Track(ctx context.Context, user *model.User, trackingNumber string) (*model.ParentOrder, error) {
	if user == nil {
		return nil, domainErrors.ErrNotAuthorized
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, domainErrors.ErrNotFound
	}

	order, err := u.orders.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != user.ID && !user.Can(model.PermissionSuperAdmin) {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// Transition moves the order and all of its children to a new status.
func (u *OrderUseCase) Transition(ctx context.Context, user *model.User, orderID, statusID int64, proof *string) (*model.ParentOrder, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := u.authorizeTransition(ctx, user, order); err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues(metrics.TransitionDenied).Inc()
		u.logger.WarnContext(ctx, "order transition denied",
			slog.Int64("order_id", orderID),
			slog.Int64("user_id", userID(user)),
			slog.Any("error", err),
		)
		return nil, err
	}

	status, err := u.statuses.GetByID(ctx, statusID)
	if err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues(metrics.TransitionInvalid).Inc()
		return nil, err
	}

	proof = normalizeProof(proof)
	if status.RequiresProofVoucher && proof == nil {
		metrics.OrderTransitionsTotal.WithLabelValues(metrics.TransitionInvalid).Inc()
		u.logger.WarnContext(ctx, "order transition rejected",
			slog.Int64("order_id", orderID),
			slog.Int64("status_id", statusID),
			slog.String("reason", "proof of payment missing"),
		)
		return nil, domainErrors.ErrProofRequired
	}

	if err := u.orders.ApplyStatus(ctx, order, status.ID, proof); err != nil {
		metrics.OrderTransitionsTotal.WithLabelValues(metrics.TransitionFailed).Inc()
		u.logger.ErrorContext(ctx, "order transition failed",
			slog.Int64("order_id", orderID),
			slog.Int64("status_id", statusID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("apply status %d to order %d: %w", status.ID, orderID, err)
	}
	order.ApplyStatus(status.ID, proof)

	metrics.OrderTransitionsTotal.WithLabelValues(metrics.TransitionApplied).Inc()
	metrics.CascadedChildOrdersTotal.Add(float64(len(order.Children)))
	u.logger.InfoContext(ctx, "order status changed",
		slog.Int64("order_id", orderID),
		slog.String("status", status.Name),
		slog.Int("children", len(order.Children)),
	)
	return order, nil
}

func (u *OrderUseCase) authorizeTransition(ctx context.Context, user *model.User, order *model.ParentOrder) error {
	if user == nil {
		return domainErrors.ErrNotAuthorized
	}
	if order.ShopID != nil {
		ok, err := u.access.HasAccess(ctx, user, order.ShopID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		return domainErrors.ErrNotAuthorized
	}
	if user.IsElevated() {
		return nil
	}
	return domainErrors.ErrNotAuthorized
}

// Delete removes an order. Only elevated users may delete orders.
func (u *OrderUseCase) Delete(ctx context.Context, user *model.User, id int64) error {
	if !user.IsElevated() {
		return domainErrors.ErrNotAuthorized
	}
	return u.orders.Delete(ctx, id)
}

// ExportStoreOrders collects orders of the active shops owned by user,
// optionally narrowed to one shop.
func (u *OrderUseCase) ExportStoreOrders(ctx context.Context, user *model.User, shopID *int64) (*model.Dataset, error) {
	if !user.Can(model.PermissionStoreOwner) {
		return nil, domainErrors.ErrNotAuthorized
	}

	shops, err := u.shops.ListActiveByOwner(ctx, user.ID, shopID)
	if err != nil {
		return nil, fmt.Errorf("list shops of owner %d: %w", user.ID, err)
	}

	ds := &model.Dataset{Columns: model.OrderExportFields}
	if len(shops) == 0 {
		return ds, nil
	}

	ids := make([]int64, 0, len(shops))
	for _, shop := range shops {
		ids = append(ids, shop.ID)
	}

	orders, err := u.orders.ListByShops(ctx, ids)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return ds, nil
		}
		return nil, fmt.Errorf("list orders of shops: %w", err)
	}

	ds.Rows = make([][]string, 0, len(orders))
	for i := range orders {
		ds.Rows = append(ds.Rows, orders[i].ExportRecord())
	}
	return ds, nil
}

func normalizeProof(proof *string) *string {
	if proof == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*proof)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func userID(user *model.User) int64 {
	if user == nil {
		return 0
	}
	return user.ID
}
