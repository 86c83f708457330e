package dto

import (
	"time"

	"talent-board/internal/domain/user"
)

type UserResponse struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		WalletAddress: u.WalletAddress,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
