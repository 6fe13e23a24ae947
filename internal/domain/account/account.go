package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

var (
	ErrEmailTaken         = httperr.ErrBusiness("email_taken", "User already exists with this email")
	ErrInvalidCredentials = httperr.Unauthorized("invalid_credentials", "Invalid credentials")
	ErrDeactivated        = httperr.Unauthorized("account_deactivated", "User account is deactivated")
	ErrWrongPassword      = httperr.BadRequest("wrong_password", "Current password is incorrect")
	ErrRefreshRevoked     = httperr.Unauthorized("invalid_refresh_token", "Invalid refresh token")
)

type Repository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, a *models.Account) error
}

// ===============================
// Refresh token list
// ===============================

func AddRefreshToken(a *models.Account, tokenHash, device string, expiresAt, now time.Time) {
	PruneExpired(a, now)
	a.RefreshTokens = append(a.RefreshTokens, models.RefreshToken{
		TokenHash: tokenHash,
		Device:    device,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	})
}

// HasRefreshToken reports whether tokenHash is outstanding and unexpired.
func HasRefreshToken(a *models.Account, tokenHash string, now time.Time) bool {
	for _, rt := range a.RefreshTokens {
		if rt.TokenHash == tokenHash {
			return rt.ExpiresAt.After(now)
		}
	}
	return false
}

func RemoveRefreshToken(a *models.Account, tokenHash string) bool {
	kept := a.RefreshTokens[:0]
	removed := false
	for _, rt := range a.RefreshTokens {
		if rt.TokenHash == tokenHash {
			removed = true
			continue
		}
		kept = append(kept, rt)
	}
	a.RefreshTokens = kept
	return removed
}

func ClearRefreshTokens(a *models.Account) {
	a.RefreshTokens = nil
}

func PruneExpired(a *models.Account, now time.Time) {
	kept := a.RefreshTokens[:0]
	for _, rt := range a.RefreshTokens {
		if rt.ExpiresAt.After(now) {
			kept = append(kept, rt)
		}
	}
	a.RefreshTokens = kept
}
