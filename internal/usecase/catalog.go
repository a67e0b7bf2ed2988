package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/export"
)

// CatalogUseCase exports the product catalog.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// ExportProducts returns every product with a header derived from the
// products table schema.
func (u *CatalogUseCase) ExportProducts(ctx context.Context, user *model.User) (*model.Dataset, error) {
	if !user.IsElevated() {
		return nil, domainErrors.ErrNotAuthorized
	}

	columns, err := u.products.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("products schema: %w", err)
	}
	header := export.SchemaHeader(columns)
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: products table has no exportable columns", domainErrors.ErrExportFailed)
	}

	rows, err := u.products.Rows(ctx, header)
	if err != nil {
		return nil, fmt.Errorf("products rows: %w", err)
	}
	return &model.Dataset{Name: "products", Columns: header, Rows: rows}, nil
}
