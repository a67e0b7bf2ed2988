package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id BIGSERIAL PRIMARY KEY,
        login TEXT UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        dni VARCHAR(191),
        dni_document_path VARCHAR(191),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS user_permissions (
        user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        permission TEXT NOT NULL,
        PRIMARY KEY (user_id, permission)
    )`,
	`CREATE TABLE IF NOT EXISTS shops (
        id BIGSERIAL PRIMARY KEY,
        owner_id BIGINT NOT NULL REFERENCES users(id),
        name TEXT NOT NULL,
        is_active BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS shop_staff (
        shop_id BIGINT NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
        user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (shop_id, user_id)
    )`,
	`CREATE TABLE IF NOT EXISTS order_statuses (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        serial INTEGER NOT NULL DEFAULT 0,
        requires_proof_voucher BOOLEAN NOT NULL DEFAULT FALSE
    )`,
	`CREATE TABLE IF NOT EXISTS orders (
        id BIGSERIAL PRIMARY KEY,
        tracking_number TEXT UNIQUE NOT NULL,
        customer_id BIGINT NOT NULL REFERENCES users(id),
        shop_id BIGINT REFERENCES shops(id),
        parent_id BIGINT REFERENCES orders(id) ON DELETE CASCADE,
        status BIGINT NOT NULL REFERENCES order_statuses(id),
        id_proof_voucher_media TEXT,
        amount DOUBLE PRECISION NOT NULL DEFAULT 0,
        total DOUBLE PRECISION NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS marketing_images (
        id BIGSERIAL PRIMARY KEY,
        url TEXT NOT NULL,
        area TEXT NOT NULL,
        text TEXT,
        text_position TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS products (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        slug TEXT UNIQUE NOT NULL,
        description TEXT,
        price DOUBLE PRECISION,
        sale_price DOUBLE PRECISION,
        sku TEXT,
        quantity INTEGER NOT NULL DEFAULT 0,
        status TEXT NOT NULL DEFAULT 'draft',
        shipping_class_id BIGINT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        deleted_at TIMESTAMPTZ
    )`,
	`CREATE INDEX IF NOT EXISTS idx_orders_parent ON orders(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_shop ON orders(shop_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, created_at DESC)`,
}

func (s *Storage) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
