package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

type shopRepository struct {
	storage *Storage
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	const query = `SELECT s.id, s.owner_id, s.name, s.is_active,
           COALESCE(array_agg(st.user_id) FILTER (WHERE st.user_id IS NOT NULL), '{}')
    FROM shops s
    LEFT JOIN shop_staff st ON st.shop_id = s.id
    WHERE s.id=$1
    GROUP BY s.id`

	var shop model.Shop
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&shop.ID, &shop.OwnerID, &shop.Name, &shop.IsActive, &shop.StaffIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) ListActiveByOwner(ctx context.Context, ownerID int64, shopID *int64) ([]model.Shop, error) {
	const query = `SELECT id, owner_id, name, is_active FROM shops
                   WHERE owner_id=$1 AND is_active AND ($2::BIGINT IS NULL OR id=$2)
                   ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ownerID, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Shop
	for rows.Next() {
		var shop model.Shop
		if err := rows.Scan(&shop.ID, &shop.OwnerID, &shop.Name, &shop.IsActive); err != nil {
			return nil, err
		}
		result = append(result, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
