package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"talent-board/internal/database"
	"talent-board/internal/domain/profile"
	"talent-board/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SeekerRow is a user joined with its profile, as listed on the board.
type SeekerRow struct {
	User    user.User
	Profile profile.Profile
}

// SeekerSort values accepted by ListSeekers filtering.
const (
	SeekerSortRecent       = "recent"
	SeekerSortEndorsements = "endorsements"
)

type SeekerFilter struct {
	Query  string
	Skills []string
	SortBy string
}

type ProfileRepository interface {
	Create(ctx context.Context, p profile.Profile) error
	Update(ctx context.Context, p profile.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	ListSeekers(ctx context.Context, f SeekerFilter) ([]SeekerRow, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p profile.Profile) error {
	links, err := marshalProjectLinks(p.ProjectLinks)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, name, bio, telegram_handle, skill_tags, project_links, endorsement_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 0)`,
		p.ID, p.UserID, p.Name, p.Bio, p.TelegramHandle, tagsOrEmpty(p.SkillTags), links,
	)
	return err
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	links, err := marshalProjectLinks(p.ProjectLinks)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE profiles
		 SET name = $2, bio = $3, telegram_handle = $4, skill_tags = $5, project_links = $6, updated_at = now()
		 WHERE user_id = $1`,
		p.UserID, p.Name, p.Bio, p.TelegramHandle, tagsOrEmpty(p.SkillTags), links,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, selectProfile+` WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx, selectProfile+` WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) ListSeekers(ctx context.Context, f SeekerFilter) ([]SeekerRow, error) {
	order := `u.created_at DESC`
	if f.SortBy == SeekerSortEndorsements {
		order = `p.endorsement_count DESC, u.created_at DESC`
	}

	query := strings.TrimSpace(f.Query)
	skills := tagsOrEmpty(f.Skills)

	rows, err := r.db.Query(ctx, fmt.Sprintf(
		`SELECT u.id, u.wallet_address, u.role, u.created_at, u.updated_at,
		        p.id, p.user_id, p.name, COALESCE(p.bio, ''), p.telegram_handle,
		        p.skill_tags, p.project_links, p.endorsement_count, p.created_at, p.updated_at
		 FROM users u
		 JOIN profiles p ON p.user_id = u.id
		 WHERE u.role = $1
		   AND ($2 = '' OR p.name ILIKE '%%' || $2 || '%%' OR COALESCE(p.bio, '') ILIKE '%%' || $2 || '%%')
		   AND (cardinality($3::text[]) = 0 OR p.skill_tags && $3::text[])
		 ORDER BY %s`, order),
		string(user.RoleSeeker), query, skills,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SeekerRow, 0)
	for rows.Next() {
		var s SeekerRow
		var role string
		var rawLinks []byte
		err := rows.Scan(
			&s.User.ID, &s.User.WalletAddress, &role, &s.User.CreatedAt, &s.User.UpdatedAt,
			&s.Profile.ID, &s.Profile.UserID, &s.Profile.Name, &s.Profile.Bio, &s.Profile.TelegramHandle,
			&s.Profile.SkillTags, &rawLinks, &s.Profile.EndorsementCount, &s.Profile.CreatedAt, &s.Profile.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		s.User.Role = user.Role(role)
		if s.Profile.ProjectLinks, err = unmarshalProjectLinks(rawLinks); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectProfile = `SELECT id, user_id, name, COALESCE(bio, ''), telegram_handle, skill_tags, project_links, endorsement_count, created_at, updated_at FROM profiles`

func scanProfile(row database.Row) (profile.Profile, error) {
	var p profile.Profile
	var rawLinks []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Bio, &p.TelegramHandle,
		&p.SkillTags, &rawLinks, &p.EndorsementCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	if p.ProjectLinks, err = unmarshalProjectLinks(rawLinks); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func marshalProjectLinks(links []profile.ProjectLink) ([]byte, error) {
	if links == nil {
		links = []profile.ProjectLink{}
	}
	return json.Marshal(links)
}

func unmarshalProjectLinks(raw []byte) ([]profile.ProjectLink, error) {
	if len(raw) == 0 {
		return []profile.ProjectLink{}, nil
	}
	var links []profile.ProjectLink
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, err
	}
	return links, nil
}
