// Package auth turns bearer tokens issued by the identity provider into an Identity.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/example/marketplace/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingToken = errors.New("missing bearer token")

// Identity is the authenticated caller.
type Identity struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
}

// IsAdmin matches the platform's admin gate: staff or superuser.
func (i Identity) IsAdmin() bool {
	return i.IsStaff || i.IsSuperuser
}

type Claims struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

type Provider struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewProvider(cfg *config.AuthConfig) *Provider {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Provider{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: ttl}
}

// GenerateToken signs an HS256 token for id.
func (p *Provider) GenerateToken(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:      id.UserID,
		Username:    id.Username,
		IsSuperuser: id.IsSuperuser,
		IsStaff:     id.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// CurrentUser parses a raw token or an "Authorization: Bearer ..." header value.
func (p *Provider) CurrentUser(header string) (Identity, error) {
	raw := strings.TrimSpace(header)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return Identity{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}
	return Identity{
		UserID:      claims.UserID,
		Username:    claims.Username,
		IsSuperuser: claims.IsSuperuser,
		IsStaff:     claims.IsStaff,
	}, nil
}
