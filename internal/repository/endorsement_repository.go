package repository

import (
	"context"
	"errors"

	"talent-board/internal/database"
	"talent-board/internal/domain/endorsement"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EndorsementWithEndorser carries the read-time join against the
// endorser's own profile; Name/TelegramHandle are empty when the
// endorser has none.
type EndorsementWithEndorser struct {
	endorsement.Endorsement
	EndorserName     string
	EndorserTelegram string
}

type EndorsementRepository interface {
	GetByPair(ctx context.Context, endorserWallet string, profileID uuid.UUID) (endorsement.Endorsement, error)
	Exists(ctx context.Context, endorserWallet string, profileID uuid.UUID) (bool, error)
	CreateAndIncrement(ctx context.Context, e endorsement.Endorsement) error
	DeleteAndDecrement(ctx context.Context, id uuid.UUID, profileID uuid.UUID) error
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]EndorsementWithEndorser, error)
}

type PostgresEndorsementRepository struct {
	db database.DB
}

func NewPostgresEndorsementRepository(db database.DB) *PostgresEndorsementRepository {
	return &PostgresEndorsementRepository{db: db}
}

func (r *PostgresEndorsementRepository) GetByPair(ctx context.Context, endorserWallet string, profileID uuid.UUID) (endorsement.Endorsement, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, endorser_wallet, profile_id, message, relationship_tag, created_at
		 FROM endorsements
		 WHERE endorser_wallet = $1 AND profile_id = $2`,
		endorserWallet, profileID,
	)
	var e endorsement.Endorsement
	err := row.Scan(&e.ID, &e.EndorserWallet, &e.ProfileID, &e.Message, &e.RelationshipTag, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return endorsement.Endorsement{}, endorsement.ErrNotFound
		}
		return endorsement.Endorsement{}, err
	}
	return e, nil
}

func (r *PostgresEndorsementRepository) Exists(ctx context.Context, endorserWallet string, profileID uuid.UUID) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM endorsements WHERE endorser_wallet = $1 AND profile_id = $2
		 )`,
		endorserWallet, profileID,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CreateAndIncrement inserts the endorsement row and bumps the target
// profile's denormalized counter in one transaction; either both writes
// land or neither does.
func (r *PostgresEndorsementRepository) CreateAndIncrement(ctx context.Context, e endorsement.Endorsement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO endorsements (id, endorser_wallet, profile_id, message, relationship_tag)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.EndorserWallet, e.ProfileID, e.Message, e.RelationshipTag,
	)
	if err != nil {
		return err
	}

	n, err := tx.Exec(ctx,
		`UPDATE profiles SET endorsement_count = endorsement_count + 1 WHERE id = $1`,
		e.ProfileID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return endorsement.ErrNotFound
	}

	return tx.Commit(ctx)
}

// DeleteAndDecrement removes the endorsement and decrements the counter
// atomically; the decrement never runs without its paired delete.
func (r *PostgresEndorsementRepository) DeleteAndDecrement(ctx context.Context, id uuid.UUID, profileID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	n, err := tx.Exec(ctx, `DELETE FROM endorsements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return endorsement.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE profiles SET endorsement_count = endorsement_count - 1 WHERE id = $1`,
		profileID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresEndorsementRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]EndorsementWithEndorser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.endorser_wallet, e.profile_id, e.message, e.relationship_tag, e.created_at,
		        COALESCE(ep.name, ''), COALESCE(ep.telegram_handle, '')
		 FROM endorsements e
		 LEFT JOIN users u ON u.wallet_address = e.endorser_wallet
		 LEFT JOIN profiles ep ON ep.user_id = u.id
		 WHERE e.profile_id = $1
		 ORDER BY e.created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EndorsementWithEndorser, 0)
	for rows.Next() {
		var e EndorsementWithEndorser
		err := rows.Scan(
			&e.ID, &e.EndorserWallet, &e.ProfileID, &e.Message, &e.RelationshipTag, &e.CreatedAt,
			&e.EndorserName, &e.EndorserTelegram,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
