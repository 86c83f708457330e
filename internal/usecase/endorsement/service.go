package endorsement

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"talent-board/internal/domain/endorsement"
	"talent-board/internal/domain/profile"
	"talent-board/internal/domain/user"
	"talent-board/internal/pkg/ethereum"
	"talent-board/internal/repository"
	"talent-board/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrNoProfile            = errors.New("endorser has no profile")
	ErrMessageTooShort      = errors.New("message too short")
	ErrMissingRelationship  = errors.New("missing relationship tag")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSelfEndorsement      = errors.New("self endorsement")
	ErrDuplicateEndorsement = errors.New("duplicate endorsement")
	ErrNotFound             = errors.New("endorsement not found")
	ErrInternal             = errors.New("internal error")
)

type EndorseInput struct {
	EndorserAddress string
	ProfileID       uuid.UUID
	Message         string
	RelationshipTag string
}

// ProfileEndorsement is an endorsement enriched at read time with the
// endorser's display name and contact handle.
type ProfileEndorsement struct {
	endorsement.Endorsement
	EndorserName     string
	EndorserTelegram string
}

type EndorsementUsecase interface {
	Endorse(ctx context.Context, in EndorseInput) error
	Remove(ctx context.Context, endorserAddress string, profileID uuid.UUID) error
	HasEndorsed(ctx context.Context, endorserAddress string, profileID uuid.UUID) bool
	ListForProfile(ctx context.Context, profileID uuid.UUID) []ProfileEndorsement
}

type Service struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	endorsements repository.EndorsementRepository
	logger       *log.Logger
}

func NewService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	endorsements repository.EndorsementRepository,
	logger *log.Logger,
) *Service {
	return &Service{users: users, profiles: profiles, endorsements: endorsements, logger: logger}
}

// Endorse runs the validation chain in a fixed order, first failing
// check wins, then lands the endorsement row and the counter increment
// in one transaction.
func (s *Service) Endorse(ctx context.Context, in EndorseInput) error {
	endorser, err := ethereum.NormalizeAddress(in.EndorserAddress)
	if err != nil {
		return ErrNoProfile
	}

	// 1. Endorsing requires a profile of your own.
	endorserUser, err := s.users.GetByWallet(ctx, endorser)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNoProfile
		}
		return ErrInternal
	}
	if _, err := s.profiles.GetByUserID(ctx, endorserUser.ID); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return ErrNoProfile
		}
		return ErrInternal
	}

	// 2. Substantive message only; the boundary is inclusive.
	if utf8.RuneCountInString(strings.TrimSpace(in.Message)) < endorsement.MinMessageLength {
		return ErrMessageTooShort
	}

	// 3. Relationship must come from the closed set.
	if !endorsement.IsValidRelationshipTag(in.RelationshipTag) {
		return ErrMissingRelationship
	}

	// 4. Target must exist.
	target, err := s.profiles.GetByID(ctx, in.ProfileID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return ErrProfileNotFound
		}
		return ErrInternal
	}

	// 5. No endorsing yourself, regardless of address casing.
	owner, err := s.users.GetByID(ctx, target.UserID)
	if err != nil {
		return ErrInternal
	}
	if strings.EqualFold(owner.WalletAddress, endorser) {
		return ErrSelfEndorsement
	}

	// 6. One endorsement per (endorser, profile) pair.
	exists, err := s.endorsements.Exists(ctx, endorser, in.ProfileID)
	if err != nil {
		return ErrInternal
	}
	if exists {
		return ErrDuplicateEndorsement
	}

	e := endorsement.Endorsement{
		ID:              uuid.New(),
		EndorserWallet:  endorser,
		ProfileID:       in.ProfileID,
		Message:         in.Message,
		RelationshipTag: strings.TrimSpace(in.RelationshipTag),
	}
	if err := s.endorsements.CreateAndIncrement(ctx, e); err != nil {
		// The pair check above raced another request; the unique
		// constraint is the real arbiter.
		if repository.IsUniqueViolation(err) {
			return ErrDuplicateEndorsement
		}
		if s.logger != nil {
			s.logger.Printf("[Endorsement] create failed profile=%s err=%v", in.ProfileID, err)
		}
		return ErrInternal
	}

	ws.NotifyEndorsementCreated(in.ProfileID.String(), endorser)
	return nil
}

func (s *Service) Remove(ctx context.Context, endorserAddress string, profileID uuid.UUID) error {
	endorser, err := ethereum.NormalizeAddress(endorserAddress)
	if err != nil {
		return ErrNotFound
	}

	e, err := s.endorsements.GetByPair(ctx, endorser, profileID)
	if err != nil {
		if errors.Is(err, endorsement.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if err := s.endorsements.DeleteAndDecrement(ctx, e.ID, profileID); err != nil {
		if errors.Is(err, endorsement.ErrNotFound) {
			return ErrNotFound
		}
		if s.logger != nil {
			s.logger.Printf("[Endorsement] remove failed profile=%s err=%v", profileID, err)
		}
		return ErrInternal
	}
	return nil
}

// HasEndorsed fails open to false; the unique constraint inside Endorse
// is the actual gate.
func (s *Service) HasEndorsed(ctx context.Context, endorserAddress string, profileID uuid.UUID) bool {
	endorser, err := ethereum.NormalizeAddress(endorserAddress)
	if err != nil {
		return false
	}
	exists, err := s.endorsements.Exists(ctx, endorser, profileID)
	if err != nil {
		return false
	}
	return exists
}

// ListForProfile fails open to an empty list; it backs an optional UI
// affordance.
func (s *Service) ListForProfile(ctx context.Context, profileID uuid.UUID) []ProfileEndorsement {
	rows, err := s.endorsements.ListByProfile(ctx, profileID)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("[Endorsement] list failed profile=%s err=%v", profileID, err)
		}
		return []ProfileEndorsement{}
	}

	out := make([]ProfileEndorsement, 0, len(rows))
	for _, r := range rows {
		name := r.EndorserName
		if name == "" {
			name = "Anonymous"
		}
		out = append(out, ProfileEndorsement{
			Endorsement:      r.Endorsement,
			EndorserName:     name,
			EndorserTelegram: r.EndorserTelegram,
		})
	}
	return out
}
