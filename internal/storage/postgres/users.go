package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const selectUser = `SELECT u.id, u.login, u.password_hash,
           COALESCE(u.dni, ''), COALESCE(u.dni_document_path, ''), u.created_at,
           COALESCE(array_agg(p.permission) FILTER (WHERE p.permission IS NOT NULL), '{}')
    FROM users u
    LEFT JOIN user_permissions p ON p.user_id = u.id`

// Create registers user granting the customer permission.
func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const insertUser = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	const grantPermission = `INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)`

	u := model.User{
		Login:        login,
		PasswordHash: passwordHash,
		Permissions:  model.NewPermissionSet(model.PermissionCustomer),
	}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertUser, login, passwordHash).Scan(&u.ID, &u.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, grantPermission, u.ID, string(model.PermissionCustomer))
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.get(ctx, selectUser+` WHERE u.login=$1 GROUP BY u.id`, login)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.get(ctx, selectUser+` WHERE u.id=$1 GROUP BY u.id`, id)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		u           model.User
		permissions []string
	)
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Login, &u.PasswordHash, &u.DNI, &u.DNIDocumentPath, &u.CreatedAt, &permissions,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	u.Permissions = make(model.PermissionSet, len(permissions))
	for _, p := range permissions {
		u.Permissions[model.Permission(p)] = struct{}{}
	}
	return &u, nil
}

func (r *userRepository) UpdateIdentityDocument(ctx context.Context, id int64, dni, documentPath string) error {
	const query = `UPDATE users SET dni=$1, dni_document_path=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, dni, documentPath, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
