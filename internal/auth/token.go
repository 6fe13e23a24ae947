package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/workforce-scheduler/internal/config"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Claims carried by both token kinds. Refresh tokens only fill the subject.
type Claims struct {
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenType `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
	audience      string
	now           func() time.Time
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		now:           time.Now,
	}
}

func (s *TokenService) GenerateAccessToken(accountID uuid.UUID, email, role string) (string, error) {
	claims := Claims{
		Email:            email,
		Role:             role,
		TokenType:        AccessToken,
		RegisteredClaims: s.registered(accountID, s.accessExpiry),
	}
	return s.sign(claims, s.accessSecret)
}

// GenerateRefreshToken returns the signed token and its expiry.
func (s *TokenService) GenerateRefreshToken(accountID uuid.UUID) (string, time.Time, error) {
	rc := s.registered(accountID, s.refreshExpiry)
	claims := Claims{
		TokenType:        RefreshToken,
		RegisteredClaims: rc,
	}

	token, err := s.sign(claims, s.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, rc.ExpiresAt.Time, nil
}

func (s *TokenService) ValidateAccessToken(token string) (*Claims, error) {
	return s.validate(token, s.accessSecret, AccessToken)
}

func (s *TokenService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.validate(token, s.refreshSecret, RefreshToken)
}

func (s *TokenService) registered(accountID uuid.UUID, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   accountID.String(),
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *TokenService) sign(claims Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) validate(tokenString string, secret []byte, want TokenType) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrWrongTokenType)
	}
	return claims, nil
}
