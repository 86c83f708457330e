package usecase

import (
	"context"
	"errors"

	"talent-board/internal/domain/profile"
	"talent-board/internal/domain/user"
	"talent-board/internal/pkg/ethereum"
	"talent-board/internal/repository"

	"github.com/google/uuid"
)

type ContactUsecase struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewContactUsecase(users repository.UserRepository, profiles repository.ProfileRepository) *ContactUsecase {
	return &ContactUsecase{users: users, profiles: profiles}
}

// RevealContact returns the target's telegram handle. Access control is
// role-only: the requester must be a registered employer.
func (uc *ContactUsecase) RevealContact(ctx context.Context, targetUserID uuid.UUID, requesterAddress string) (string, error) {
	requester, err := ethereum.NormalizeAddress(requesterAddress)
	if err != nil {
		return "", ErrUnauthorized
	}

	ru, err := uc.users.GetByWallet(ctx, requester)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", ErrInternal
	}
	if ru.Role != user.RoleEmployer {
		return "", ErrUnauthorized
	}

	p, err := uc.profiles.GetByUserID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", ErrInternal
	}
	return p.TelegramHandle, nil
}
