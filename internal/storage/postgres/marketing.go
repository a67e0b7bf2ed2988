package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

type marketingRepository struct {
	storage *Storage
}

func (r *marketingRepository) Create(ctx context.Context, asset *model.MarketingAsset) (*model.MarketingAsset, error) {
	const query = `INSERT INTO marketing_images (url, area, text, text_position) VALUES ($1, $2, $3, $4) RETURNING id`
	created := *asset
	if err := r.storage.pool.QueryRow(ctx, query, asset.URL, asset.Area, asset.Text, asset.TextPosition).Scan(&created.ID); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *marketingRepository) GetByID(ctx context.Context, id int64) (*model.MarketingAsset, error) {
	const query = `SELECT id, url, area, text, text_position FROM marketing_images WHERE id=$1`
	var asset model.MarketingAsset
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&asset.ID, &asset.URL, &asset.Area, &asset.Text, &asset.TextPosition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *marketingRepository) List(ctx context.Context) ([]model.MarketingAsset, error) {
	const query = `SELECT id, url, area, text, text_position FROM marketing_images ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.MarketingAsset{}
	for rows.Next() {
		var asset model.MarketingAsset
		if err := rows.Scan(&asset.ID, &asset.URL, &asset.Area, &asset.Text, &asset.TextPosition); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *marketingRepository) Update(ctx context.Context, asset *model.MarketingAsset) error {
	const query = `UPDATE marketing_images SET url=$1, area=$2, text=$3, text_position=$4, updated_at=NOW() WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, asset.URL, asset.Area, asset.Text, asset.TextPosition, asset.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
