package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// AccessResolver decides whether a user may act on resources of a shop.
type AccessResolver struct {
	shops repository.ShopRepository
}

// NewAccessResolver constructs AccessResolver.
func NewAccessResolver(shops repository.ShopRepository) *AccessResolver {
	return &AccessResolver{shops: shops}
}

// CheckShop returns nil when user may act on the shop. Roles are evaluated in
// order elevated, store owner, staff and the first held role decides.
func (r *AccessResolver) CheckShop(ctx context.Context, user *model.User, shopID int64) error {
	if user == nil {
		return domainErrors.ErrNotAuthorized
	}

	shop, err := r.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrShopNotFound
		}
		return err
	}
	if !shop.IsActive {
		return domainErrors.ErrShopNotApproved
	}

	switch {
	case user.IsElevated():
		return nil
	case user.Can(model.PermissionStoreOwner):
		if shop.OwnerID == user.ID {
			return nil
		}
	case user.Can(model.PermissionStaff):
		if shop.HasStaff(user.ID) {
			return nil
		}
	}
	return domainErrors.ErrNotAuthorized
}

// HasAccess is the boolean form of CheckShop. Without a shop only elevated
// users pass. An inactive shop is still reported as ErrShopNotApproved.
func (r *AccessResolver) HasAccess(ctx context.Context, user *model.User, shopID *int64) (bool, error) {
	if shopID == nil {
		return user.IsElevated(), nil
	}

	err := r.CheckShop(ctx, user, *shopID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domainErrors.ErrShopNotFound), errors.Is(err, domainErrors.ErrNotAuthorized):
		return false, nil
	default:
		return false, err
	}
}
