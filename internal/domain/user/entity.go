package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidRole = errors.New("invalid role")
)

// Role is a closed two-value enumeration; anything else is rejected at
// the boundary.
type Role string

const (
	RoleSeeker   Role = "SEEKER"
	RoleEmployer Role = "EMPLOYER"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleSeeker:
		return RoleSeeker, nil
	case RoleEmployer:
		return RoleEmployer, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is keyed by its lowercase wallet address; rows are created
// implicitly on first successful login or profile save.
type User struct {
	ID            uuid.UUID
	WalletAddress string
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
