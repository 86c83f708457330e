package repository

import (
	"context"
	"errors"

	"talent-board/internal/database"
	"talent-board/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByWallet(ctx context.Context, wallet string) (user.User, error)
	Touch(ctx context.Context, wallet string) (user.User, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, wallet_address, role)
		 VALUES ($1, $2, $3)`,
		u.ID, u.WalletAddress, string(u.Role),
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, wallet_address, role, created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByWallet(ctx context.Context, wallet string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, wallet_address, role, created_at, updated_at
		 FROM users
		 WHERE wallet_address = $1`,
		wallet,
	)
	return scanUser(row)
}

// Touch bumps updated_at for an existing user and returns the fresh row.
func (r *PostgresUserRepository) Touch(ctx context.Context, wallet string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET updated_at = now()
		 WHERE wallet_address = $1
		 RETURNING id, wallet_address, role, created_at, updated_at`,
		wallet,
	)
	return scanUser(row)
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(&u.ID, &u.WalletAddress, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
