package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

type orderStatusRepository struct {
	storage *Storage
}

const orderColumns = `o.id, o.tracking_number, o.customer_id, o.shop_id, o.parent_id, o.status,
           o.id_proof_voucher_media, o.amount, o.total, o.created_at, o.updated_at`

// childrenColumn aggregates child orders into a JSON array text.
const childrenColumn = `COALESCE((
        SELECT json_agg(json_build_object(
            'id', c.id, 'tracking_number', c.tracking_number, 'customer_id', c.customer_id,
            'shop_id', c.shop_id, 'parent_id', c.parent_id, 'status', c.status,
            'id_proof_voucher_media', c.id_proof_voucher_media, 'amount', c.amount, 'total', c.total,
            'created_at', c.created_at, 'updated_at', c.updated_at) ORDER BY c.id)
        FROM orders c WHERE c.parent_id = o.id), '[]')::text`

const noChildrenColumn = `'[]'::text`

func scanOrder(row pgx.Row, dest *model.Order, extra ...any) error {
	targets := []any{
		&dest.ID, &dest.TrackingNumber, &dest.CustomerID, &dest.ShopID, &dest.ParentID, &dest.StatusID,
		&dest.ProofVoucherMedia, &dest.Amount, &dest.Total, &dest.CreatedAt, &dest.UpdatedAt,
	}
	return row.Scan(append(targets, extra...)...)
}

func scanParentOrder(row pgx.Row) (*model.ParentOrder, error) {
	var (
		order    model.ParentOrder
		children string
	)
	if err := scanOrder(row, &order.Order, &children); err != nil {
		return nil, err
	}
	if err := order.Children.UnmarshalJSON([]byte(children)); err != nil {
		return nil, fmt.Errorf("order %d: %w", order.ID, err)
	}
	return &order, nil
}

func (r *orderRepository) getOne(ctx context.Context, where string, arg any) (*model.ParentOrder, error) {
	query := `SELECT ` + orderColumns + `, ` + childrenColumn + ` FROM orders o WHERE ` + where
	order, err := scanParentOrder(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.ParentOrder, error) {
	return r.getOne(ctx, `o.id=$1`, id)
}

func (r *orderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*model.ParentOrder, error) {
	return r.getOne(ctx, `o.tracking_number=$1`, trackingNumber)
}

func scopeFilter(scope model.OrderScope) (string, []any, error) {
	switch scope.Kind {
	case model.ScopeAllParents:
		return `o.parent_id IS NULL`, nil, nil
	case model.ScopeShopChildren:
		return `o.shop_id=$1 AND o.parent_id IS NOT NULL`, []any{scope.ShopID}, nil
	case model.ScopeCustomerParents:
		return `o.customer_id=$1 AND o.parent_id IS NULL`, []any{scope.CustomerID}, nil
	default:
		return "", nil, domainErrors.ErrNotAuthorized
	}
}

func (r *orderRepository) List(ctx context.Context, scope model.OrderScope, page model.Page) (*model.OrderPage, error) {
	where, args, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}

	result := &model.OrderPage{Page: page, Items: []model.ParentOrder{}}
	countQuery := `SELECT COUNT(*) FROM orders o WHERE ` + where
	if err := r.storage.pool.QueryRow(ctx, countQuery, args...).Scan(&result.Total); err != nil {
		return nil, err
	}
	if result.Total == 0 {
		return result, nil
	}

	children := noChildrenColumn
	if scope.IncludesChildren() {
		children = childrenColumn
	}
	query := fmt.Sprintf(`SELECT %s, %s FROM orders o WHERE %s
                          ORDER BY o.created_at DESC, o.id DESC
                          LIMIT $%d OFFSET $%d`, orderColumns, children, where, len(args)+1, len(args)+2)

	rows, err := r.storage.pool.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		order, err := scanParentOrder(rows)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ApplyStatus(ctx context.Context, order *model.ParentOrder, statusID int64, proof *string) error {
	const updateOrder = `UPDATE orders
                         SET status=$1, id_proof_voucher_media=COALESCE($2, id_proof_voucher_media), updated_at=NOW()
                         WHERE id=$3`
	const updateChildren = `UPDATE orders SET status=$1, updated_at=NOW() WHERE parent_id=$2`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateOrder, statusID, proof, order.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		tag, err = tx.Exec(ctx, updateChildren, statusID, order.ID)
		if err != nil {
			return fmt.Errorf("cascade status to children: %w", err)
		}
		r.storage.logger.DebugContext(ctx, "order status cascaded",
			slog.Int64("order_id", order.ID),
			slog.Int64("children", tag.RowsAffected()),
		)
		return nil
	})
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListByShops(ctx context.Context, shopIDs []int64) ([]model.Order, error) {
	if len(shopIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.shop_id = ANY($1) ORDER BY o.shop_id, o.id`
	rows, err := r.storage.pool.Query(ctx, query, shopIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderStatusRepository) GetByID(ctx context.Context, id int64) (*model.OrderStatus, error) {
	const query = `SELECT id, name, serial, requires_proof_voucher FROM order_statuses WHERE id=$1`
	var status model.OrderStatus
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&status.ID, &status.Name, &status.Serial, &status.RequiresProofVoucher)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}
