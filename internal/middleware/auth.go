package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/auth"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextAccount  = "account"
)

var (
	errNotAuthorized = httperr.Unauthorized("not_authorized", "Not authorized to access this route")
	errNoUser        = httperr.Unauthorized("user_not_found", "No user found with this token")
	errDeactivated   = httperr.Unauthorized("account_deactivated", "User account is deactivated")
)

type AccountLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// Protect requires a bearer access token that resolves to an active account.
func Protect(tokens *auth.TokenService, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			httperr.Write(c, errNotAuthorized)
			return
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			httperr.Write(c, errNotAuthorized)
			return
		}

		id, err := claims.AccountID()
		if err != nil {
			httperr.Write(c, errNotAuthorized)
			return
		}

		a, err := accounts.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Write(c, errNoUser)
				return
			}
			httperr.Write(c, httperr.Internal(err))
			return
		}
		if !a.IsActive {
			httperr.Write(c, errDeactivated)
			return
		}

		c.Set(ContextUserID, a.ID)
		c.Set(ContextUserRole, a.Role)
		c.Set(ContextAccount, a)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentAccount returns the account attached by Protect.
func CurrentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return nil
	}
	a, _ := v.(*models.Account)
	return a
}

func CurrentAccountID(c *gin.Context) uuid.UUID {
	if a := CurrentAccount(c); a != nil {
		return a.ID
	}
	return uuid.Nil
}
