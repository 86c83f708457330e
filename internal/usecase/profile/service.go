package profile

import (
	"context"
	"errors"
	"strings"

	"talent-board/internal/domain/profile"
	"talent-board/internal/domain/user"
	"talent-board/internal/pkg/ethereum"
	"talent-board/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

type SaveInput struct {
	Name           string
	Bio            string
	TelegramHandle string
	SkillTags      []string
	ProjectLinks   []profile.ProjectLink
}

// UserProfile is a user with its profile; Profile is nil when the user
// has not created one yet.
type UserProfile struct {
	User    user.User
	Profile *profile.Profile
}

type ProfileUsecase interface {
	Save(ctx context.Context, address string, in SaveInput) (profile.Profile, error)
	GetByWallet(ctx context.Context, address string) (UserProfile, error)
}

type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewService(users repository.UserRepository, profiles repository.ProfileRepository) *Service {
	return &Service{users: users, profiles: profiles}
}

// Save upserts the caller's profile. The user row is created on the fly
// if this wallet never logged in before; the save never fails just
// because the user record didn't exist yet.
func (s *Service) Save(ctx context.Context, address string, in SaveInput) (profile.Profile, error) {
	normalized, err := ethereum.NormalizeAddress(address)
	if err != nil {
		return profile.Profile{}, ErrInvalidInput
	}

	in.Name = strings.TrimSpace(in.Name)
	in.TelegramHandle = strings.TrimSpace(in.TelegramHandle)
	if in.Name == "" || in.TelegramHandle == "" {
		return profile.Profile{}, ErrInvalidInput
	}

	u, err := s.ensureUser(ctx, normalized)
	if err != nil {
		return profile.Profile{}, err
	}

	p := profile.Profile{
		ID:             uuid.New(),
		UserID:         u.ID,
		Name:           in.Name,
		Bio:            strings.TrimSpace(in.Bio),
		TelegramHandle: in.TelegramHandle,
		SkillTags:      in.SkillTags,
		ProjectLinks:   in.ProjectLinks,
	}

	existing, err := s.profiles.GetByUserID(ctx, u.ID)
	switch {
	case err == nil:
		p.ID = existing.ID
		if err := s.profiles.Update(ctx, p); err != nil {
			return profile.Profile{}, ErrInternal
		}
	case errors.Is(err, profile.ErrNotFound):
		if err := s.profiles.Create(ctx, p); err != nil {
			// Concurrent first save; the unique user_id constraint
			// arbitrates, losers retry as an update.
			if !repository.IsUniqueViolation(err) {
				return profile.Profile{}, ErrInternal
			}
			winner, gerr := s.profiles.GetByUserID(ctx, u.ID)
			if gerr != nil {
				return profile.Profile{}, ErrInternal
			}
			p.ID = winner.ID
			if err := s.profiles.Update(ctx, p); err != nil {
				return profile.Profile{}, ErrInternal
			}
		}
	default:
		return profile.Profile{}, ErrInternal
	}

	saved, err := s.profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return saved, nil
}

func (s *Service) GetByWallet(ctx context.Context, address string) (UserProfile, error) {
	normalized, err := ethereum.NormalizeAddress(address)
	if err != nil {
		return UserProfile{}, ErrInvalidInput
	}

	u, err := s.users.GetByWallet(ctx, normalized)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return UserProfile{}, ErrNotFound
		}
		return UserProfile{}, ErrInternal
	}

	out := UserProfile{User: u}
	p, err := s.profiles.GetByUserID(ctx, u.ID)
	if err == nil {
		out.Profile = &p
	} else if !errors.Is(err, profile.ErrNotFound) {
		return UserProfile{}, ErrInternal
	}
	return out, nil
}

func (s *Service) ensureUser(ctx context.Context, wallet string) (user.User, error) {
	u, err := s.users.GetByWallet(ctx, wallet)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrInternal
	}

	u = user.User{
		ID:            uuid.New(),
		WalletAddress: wallet,
		Role:          user.RoleSeeker,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repository.IsUniqueViolation(err) {
			created, gerr := s.users.GetByWallet(ctx, wallet)
			if gerr != nil {
				return user.User{}, ErrInternal
			}
			return created, nil
		}
		return user.User{}, ErrInternal
	}
	return u, nil
}
