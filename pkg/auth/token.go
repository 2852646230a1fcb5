package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeRefresh marks refresh tokens. Access tokens carry no type claim.
const TokenTypeRefresh = "refresh"

// Claims represents the JWT claims
type Claims struct {
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}

// TokenConfig holds the signing material and default lifetimes.
type TokenConfig struct {
	Secret     string
	Algorithm  string // HS256, HS384 or HS512
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock injects the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// TokenService issues and verifies stateless signed tokens. There is no
// revocation list: validity depends only on signature and expiry.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

// NewTokenService creates a TokenService for a symmetric HMAC algorithm.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	s := &TokenService{
		secret:     []byte(cfg.Secret),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessTTL returns the default access token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// IssueAccess issues an access token with the configured lifetime.
func (s *TokenService) IssueAccess(subjectID string) (string, error) {
	return s.IssueAccessTTL(subjectID, s.accessTTL)
}

// IssueAccessTTL issues an access token expiring ttl after now. The expiry is
// exclusive, so a zero ttl yields a token that never verifies.
func (s *TokenService) IssueAccessTTL(subjectID string, ttl time.Duration) (string, error) {
	return s.sign(subjectID, "", ttl)
}

// IssueRefresh issues a refresh token carrying the refresh type marker.
func (s *TokenService) IssueRefresh(subjectID string) (string, error) {
	return s.sign(subjectID, TokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) sign(subjectID, tokenType string, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", errors.New("token subject must not be empty")
	}
	now := s.now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subjectID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns its claims. Bad signatures, malformed
// payloads, wrong algorithms and expired tokens all collapse into ok=false.
func (s *TokenService) Verify(tokenString string) (*Claims, bool) {
	if tokenString == "" {
		return nil, false
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}

// SubjectOf extracts the subject id. A missing subject is invalid.
func SubjectOf(claims *Claims) (string, bool) {
	if claims == nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// ExpiresAt returns the expiry of the claims, or the zero time.
func ExpiresAt(claims *Claims) time.Time {
	if claims == nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
