package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/media"
	"github.com/polkiloo/marketplace/internal/metrics"
)

// MarketingUseCase manages promotional images on the public disk.
type MarketingUseCase struct {
	assets repository.MarketingRepository
	files  media.Storage
	logger *slog.Logger
	now    func() time.Time
}

// NewMarketingUseCase constructs MarketingUseCase.
func NewMarketingUseCase(assets repository.MarketingRepository, files media.Storage, logger *slog.Logger) *MarketingUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketingUseCase{assets: assets, files: files, logger: logger, now: time.Now}
}

// List returns all marketing assets.
func (u *MarketingUseCase) List(ctx context.Context) ([]model.MarketingAsset, error) {
	return u.assets.List(ctx)
}

// Get returns marketing asset by identifier.
func (u *MarketingUseCase) Get(ctx context.Context, id int64) (*model.MarketingAsset, error) {
	return u.assets.GetByID(ctx, id)
}

// Create stores the image and records a new asset pointing at it.
func (u *MarketingUseCase) Create(ctx context.Context, user *model.User, in model.MarketingUpload) (*model.MarketingAsset, error) {
	if !user.IsElevated() {
		return nil, domainErrors.ErrNotAuthorized
	}

	in.Area = strings.TrimSpace(in.Area)
	if in.Area == "" {
		return nil, domainErrors.FieldErrors{"area": "area is required"}
	}
	img, err := media.DecodeDataURI(in.Image)
	if err != nil {
		return nil, err
	}

	url, err := u.store(ctx, in.Area, img)
	if err != nil {
		return nil, err
	}

	return u.assets.Create(ctx, &model.MarketingAsset{
		URL:          url,
		Area:         in.Area,
		Text:         in.Text,
		TextPosition: in.TextPosition,
	})
}

// Update replaces the stored image of an asset. The previous file is removed
// before the new one is written; on failure the record keeps its old values.
func (u *MarketingUseCase) Update(ctx context.Context, user *model.User, id int64, in model.MarketingUpload) (*model.MarketingAsset, error) {
	if !user.IsElevated() {
		return nil, domainErrors.ErrNotAuthorized
	}

	asset, err := u.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	img, err := media.DecodeDataURI(in.Image)
	if err != nil {
		return nil, err
	}
	area := strings.TrimSpace(in.Area)
	if area == "" {
		area = asset.Area
	}

	if err := u.files.Delete(ctx, asset.URL); err != nil {
		metrics.MediaErrorsTotal.WithLabelValues("delete").Inc()
		u.logger.ErrorContext(ctx, "delete marketing image",
			slog.Int64("asset_id", asset.ID),
			slog.String("url", asset.URL),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: delete %s: %v", domainErrors.ErrStorage, asset.URL, err)
	}

	url, err := u.store(ctx, area, img)
	if err != nil {
		return nil, err
	}

	updated := *asset
	updated.URL = url
	updated.Area = area
	if in.Text != nil {
		updated.Text = in.Text
	}
	if in.TextPosition != nil {
		updated.TextPosition = in.TextPosition
	}
	if err := u.assets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *MarketingUseCase) store(ctx context.Context, area string, img *media.Image) (string, error) {
	name := media.Filename(u.now(), area, img.Extension)
	url, err := u.files.Put(ctx, name, img)
	if err != nil {
		metrics.MediaErrorsTotal.WithLabelValues("put").Inc()
		u.logger.ErrorContext(ctx, "store marketing image",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("%w: put %s: %v", domainErrors.ErrStorage, name, err)
	}
	return url, nil
}
