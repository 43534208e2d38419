package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loan-marketplace/internal/domain/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ identity.Provider = (*JWTProvider)(nil)

type JWTConfig struct {
	Secret string
	// Issuer is checked only when set.
	Issuer string
}

// JWTProvider verifies HS256 bearer tokens issued by the account service.
// The subject claim carries the account id.
type JWTProvider struct {
	cfg    JWTConfig
	parser *jwt.Parser
}

func NewJWTProvider(cfg JWTConfig) (*JWTProvider, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt: secret is required")
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &JWTProvider{cfg: cfg, parser: jwt.NewParser(opts...)}, nil
}

func (p *JWTProvider) Verify(_ context.Context, token string) (*identity.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, identity.ErrUnauthenticated
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := p.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(p.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrUnauthenticated, err)
	}
	if !parsed.Valid {
		return nil, identity.ErrUnauthenticated
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", identity.ErrUnauthenticated)
	}
	return &identity.Caller{UserID: claims.Subject}, nil
}

// Issue signs a token for userID. Used by local tooling and tests.
func (p *JWTProvider) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    p.cfg.Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}
