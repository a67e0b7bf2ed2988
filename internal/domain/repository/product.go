package repository

import "context"

// ProductRepository exposes the catalog for exports.
type ProductRepository interface {
	Columns(ctx context.Context) ([]string, error)
	Rows(ctx context.Context, columns []string) ([][]string, error)
}
