package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-board/internal/domain/user"
	"talent-board/internal/pkg/ethereum"
	"talent-board/internal/pkg/jwt"
	"talent-board/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

const challengeTTL = 5 * time.Minute

// ChallengeStore holds one-time login nonces. A best-effort
// implementation may report misses when its backing store is down;
// signature verification stays authoritative either way.
type ChallengeStore interface {
	Put(ctx context.Context, address, message string, ttl time.Duration) error
	// Consume removes and returns the pending challenge for address.
	Consume(ctx context.Context, address string) (string, bool)
}

type AuthenticateInput struct {
	Address   string
	Message   string
	Signature string
	Role      string
}

type AuthUsecase interface {
	Challenge(ctx context.Context, address string) (string, error)
	Authenticate(ctx context.Context, in AuthenticateInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Service struct {
	users      repository.UserRepository
	challenges ChallengeStore
	tokens     jwt.Service

	verify func(address, message, signature string) error
	now    func() time.Time
}

func NewService(users repository.UserRepository, challenges ChallengeStore, tokens jwt.Service) *Service {
	return &Service{
		users:      users,
		challenges: challenges,
		tokens:     tokens,
		verify:     ethereum.VerifyPersonalSign,
		now:        time.Now,
	}
}

// Challenge mints a one-time message for the wallet to sign.
func (s *Service) Challenge(ctx context.Context, address string) (string, error) {
	normalized, err := ethereum.NormalizeAddress(address)
	if err != nil {
		return "", ErrInvalidInput
	}

	message := fmt.Sprintf(
		"talent-board login\naddress: %s\nnonce: %s\nissued: %s",
		normalized,
		uuid.NewString(),
		s.now().UTC().Format(time.RFC3339),
	)

	if s.challenges != nil {
		if err := s.challenges.Put(ctx, normalized, message, challengeTTL); err != nil {
			return "", ErrInternal
		}
	}
	return message, nil
}

// Authenticate verifies the signed message and upserts the user. It is
// idempotent: repeated logins for the same wallet yield the same user
// row with a fresh updated_at.
func (s *Service) Authenticate(ctx context.Context, in AuthenticateInput) (user.User, string, string, error) {
	normalized, err := ethereum.NormalizeAddress(in.Address)
	if err != nil {
		return user.User{}, "", "", ErrInvalidSignature
	}

	if err := s.verify(normalized, in.Message, in.Signature); err != nil {
		return user.User{}, "", "", ErrInvalidSignature
	}

	// A pending challenge must match the signed message; a miss means the
	// store expired it or is bypassing, and verification alone decides.
	if s.challenges != nil {
		if issued, ok := s.challenges.Consume(ctx, normalized); ok && issued != in.Message {
			return user.User{}, "", "", ErrInvalidSignature
		}
	}

	role := user.RoleSeeker
	if in.Role != "" {
		role, err = user.ParseRole(in.Role)
		if err != nil {
			return user.User{}, "", "", ErrInvalidRole
		}
	}

	u, err := s.upsertUser(ctx, normalized, role)
	if err != nil {
		return user.User{}, "", "", err
	}

	access, refresh, err := s.issueTokenPair(u)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	return u, access, refresh, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !s.tokens.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return s.issueTokenPair(u)
}

func (s *Service) upsertUser(ctx context.Context, wallet string, role user.Role) (user.User, error) {
	_, err := s.users.GetByWallet(ctx, wallet)
	if err == nil {
		// Role never changes on login; only updated_at moves.
		touched, terr := s.users.Touch(ctx, wallet)
		if terr != nil {
			return user.User{}, ErrInternal
		}
		return touched, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:            uuid.New(),
		WalletAddress: wallet,
		Role:          role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// Lost a race on the unique wallet index; the other login won.
		if repository.IsUniqueViolation(err) {
			created, gerr := s.users.GetByWallet(ctx, wallet)
			if gerr != nil {
				return user.User{}, ErrInternal
			}
			return created, nil
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByWallet(ctx, wallet)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created, nil
}

func (s *Service) issueTokenPair(u user.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := s.tokens.GenerateRefreshToken(u)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
