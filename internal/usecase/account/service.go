package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/workforce-scheduler/internal/audit"
	"github.com/BruksfildServices01/workforce-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/workforce-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/workforce-scheduler/internal/domain/business"
	"github.com/BruksfildServices01/workforce-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workforce-scheduler/internal/models"
	"github.com/BruksfildServices01/workforce-scheduler/internal/useragent"
	"github.com/BruksfildServices01/workforce-scheduler/internal/validators"
)

var ErrInvalidRefresh = httperr.Unauthorized("invalid_refresh_token", "Invalid or expired refresh token")

// Meta is what the request tells us about the caller.
type Meta struct {
	IP        string
	UserAgent string
}

type Options struct {
	BcryptCost       int
	CheckEmailDomain bool
}

type Service struct {
	accounts   domain.Repository
	businesses business.Repository
	tokens     *auth.TokenService
	audit      *audit.Dispatcher
	opts       Options
	now        func() time.Time
}

func NewService(
	accounts domain.Repository,
	businesses business.Repository,
	tokens *auth.TokenService,
	audit *audit.Dispatcher,
	opts Options,
) *Service {
	return &Service{
		accounts:   accounts,
		businesses: businesses,
		tokens:     tokens,
		audit:      audit,
		opts:       opts,
		now:        time.Now,
	}
}

// Session is returned by every operation that issues a token pair.
type Session struct {
	Account      *models.Account
	Business     *models.Business
	AccessToken  string
	RefreshToken string
}

// ======================================================
// Register / Login
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput, meta Meta) (*Session, error) {
	email := normalizeEmail(in.Email)

	if s.opts.CheckEmailDomain && !validators.IsEmailDomainValid(email) {
		return nil, httperr.Validation([]httperr.FieldError{{
			Field:   "email",
			Message: "Email domain cannot receive mail",
		}})
	}

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	role := in.Role
	if role != models.RoleStaff {
		role = models.RoleOwner
	}

	hash, err := auth.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	a := &models.Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		IsActive:     true,
	}

	if err := s.accounts.Create(ctx, a); err != nil {
		if httperr.IsDuplicateKey(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	session, err := s.issue(ctx, a, meta)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		AccountID: &a.ID,
		Action:    "account_registered",
		Entity:    "account",
		EntityID:  &a.ID,
		Metadata:  map[string]any{"role": a.Role},
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})

	return session, nil
}

func (s *Service) Login(ctx context.Context, email, password string, meta Meta) (*Session, error) {
	a, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.IsActive {
		return nil, domain.ErrDeactivated
	}
	if !auth.CheckPassword(a.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	a.LastLogin = &now

	session, err := s.issue(ctx, a, meta)
	if err != nil {
		return nil, err
	}

	session.Business, err = s.businessFor(ctx, a)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: a.BusinessID,
		AccountID:  &a.ID,
		Action:     "login",
		Entity:     "account",
		EntityID:   &a.ID,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return session, nil
}

// ======================================================
// Tokens
// ======================================================

// Refresh exchanges a stored refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefresh
	}
	id, err := claims.AccountID()
	if err != nil {
		return "", ErrInvalidRefresh
	}

	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefresh
		}
		return "", err
	}

	if !domain.HasRefreshToken(a, auth.HashToken(refreshToken), s.now()) {
		return "", domain.ErrRefreshRevoked
	}
	if !a.IsActive {
		return "", domain.ErrDeactivated
	}

	return s.tokens.GenerateAccessToken(a.ID, a.Email, a.Role)
}

func (s *Service) Logout(ctx context.Context, accountID uuid.UUID, refreshToken string) error {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	domain.RemoveRefreshToken(a, auth.HashToken(refreshToken))
	domain.PruneExpired(a, s.now())
	return s.accounts.Update(ctx, a)
}

func (s *Service) LogoutAll(ctx context.Context, accountID uuid.UUID) error {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	domain.ClearRefreshTokens(a)
	return s.accounts.Update(ctx, a)
}

type SessionInfo struct {
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Sessions lists the unexpired refresh tokens, newest first.
func (s *Service) Sessions(ctx context.Context, accountID uuid.UUID) ([]SessionInfo, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]SessionInfo, 0, len(a.RefreshTokens))
	for i := len(a.RefreshTokens) - 1; i >= 0; i-- {
		rt := a.RefreshTokens[i]
		if !rt.ExpiresAt.After(now) {
			continue
		}
		out = append(out, SessionInfo{Device: rt.Device, CreatedAt: rt.CreatedAt, ExpiresAt: rt.ExpiresAt})
	}
	return out, nil
}

// ======================================================
// Self service
// ======================================================

// Me returns the account and, for owners and staff, the business they belong to.
func (s *Service) Me(ctx context.Context, accountID uuid.UUID) (*models.Account, *models.Business, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.businessFor(ctx, a)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

type ProfileUpdate struct {
	Name  *string
	Phone *string
}

func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, in ProfileUpdate) (*models.Account, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		a.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ChangePassword revokes every refresh token and returns a fresh pair for the caller.
func (s *Service) ChangePassword(ctx context.Context, accountID uuid.UUID, current, next string, meta Meta) (*Session, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(a.PasswordHash, current) {
		return nil, domain.ErrWrongPassword
	}

	hash, err := auth.HashPassword(next, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash
	domain.ClearRefreshTokens(a)

	session, err := s.issue(ctx, a, meta)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		BusinessID: a.BusinessID,
		AccountID:  &a.ID,
		Action:     "password_changed",
		Entity:     "account",
		EntityID:   &a.ID,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
	})

	return session, nil
}

// ======================================================
// Helpers
// ======================================================

// issue signs a token pair, stores the refresh hash and persists the account.
func (s *Service) issue(ctx context.Context, a *models.Account, meta Meta) (*Session, error) {
	access, err := s.tokens.GenerateAccessToken(a.ID, a.Email, a.Role)
	if err != nil {
		return nil, err
	}
	refresh, expiresAt, err := s.tokens.GenerateRefreshToken(a.ID)
	if err != nil {
		return nil, err
	}

	device := "Unknown device"
	if meta.UserAgent != "" {
		device = useragent.Describe(meta.UserAgent)
	}
	domain.AddRefreshToken(a, auth.HashToken(refresh), device, expiresAt, s.now())

	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, err
	}

	return &Session{Account: a, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) businessFor(ctx context.Context, a *models.Account) (*models.Business, error) {
	if a.BusinessID == nil || a.Role == models.RoleAdmin {
		return nil, nil
	}
	b, err := s.businesses.GetByID(ctx, *a.BusinessID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return b, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
