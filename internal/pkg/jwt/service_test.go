package jwt

import (
	"errors"
	"testing"
	"time"

	"talent-board/internal/domain/user"

	"github.com/google/uuid"
)

func testUser() user.User {
	return user.User{
		ID:            uuid.New(),
		WalletAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		Role:          user.RoleSeeker,
	}
}

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	u := testUser()

	tok, err := svc.GenerateAccessToken(u)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("unexpected user id")
	}
	if claims.WalletAddress != u.WalletAddress {
		t.Fatalf("unexpected wallet %q", claims.WalletAddress)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token, got %q", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token must not pass the refresh check")
	}
}

func TestHMACService_RefreshTokenType(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)

	tok, err := svc.GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token type, got %q", claims.TokenType)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	tok, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	issuer := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewHMACService("different", "also-different", time.Minute, time.Hour)

	tok, err := issuer.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
