// Package auth is the admin sign-in gateway.
//
// Sign-in delegates to a hosted identity provider when one is configured. A
// fixed demo credential pair is accepted only while no provider is set; any
// real deployment configures a provider, which disables the fallback
// entirely. Only the admin role may hold a session: every other role is
// rejected at login, mirroring a forced sign-out.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelineco/go-shop-backend/internal/domain"
)

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike,
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAdmin rejects a valid sign-in whose role is not admin.
	ErrNotAdmin = errors.New("not an admin")

	// ErrInvalidToken indicates a malformed, forged or mis-signed token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates a structurally valid token past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// RoleAdmin is the only role allowed into the back office.
const RoleAdmin = "admin"

// Identity is the provider's view of a signed-in user.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Provider is a hosted identity service. SignIn authenticates the email and
// password pair and reports the linked profile's role.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
}

// Claims is the session token payload.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Gateway mints and verifies admin session tokens.
type Gateway struct {
	provider  Provider
	demoEmail string
	demoHash  []byte
	secret    []byte
	tokenTTL  time.Duration
}

// NewGateway builds the gateway. provider may be nil (unconfigured), in which
// case the demo credentials are live; the plaintext demo password is hashed
// once here and never retained.
func NewGateway(provider Provider, demoEmail, demoPassword, secret string, tokenTTL time.Duration) (*Gateway, error) {
	g := &Gateway{
		provider:  provider,
		demoEmail: demoEmail,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
	}
	if provider == nil && demoPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		g.demoHash = hash
	}
	return g, nil
}

// Login authenticates the pair and returns a signed session token. Non-admin
// identities are rejected even when the credentials are correct.
func (g *Gateway) Login(ctx context.Context, email, password string) (string, Identity, error) {
	id, err := g.authenticate(ctx, email, password)
	if err != nil {
		return "", Identity{}, err
	}
	if id.Role != RoleAdmin {
		return "", Identity{}, ErrNotAdmin
	}
	token, err := g.mint(id)
	if err != nil {
		return "", Identity{}, err
	}
	return token, id, nil
}

func (g *Gateway) authenticate(ctx context.Context, email, password string) (Identity, error) {
	if g.provider != nil {
		id, err := g.provider.SignIn(ctx, email, password)
		if err != nil {
			return Identity{}, ErrInvalidCredentials
		}
		return id, nil
	}
	// Demo fallback, live only while no provider is configured.
	if g.demoHash == nil || !strings.EqualFold(email, g.demoEmail) {
		return Identity{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(g.demoHash, []byte(password)) != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{UserID: "admin_demo", Email: g.demoEmail, Role: RoleAdmin}, nil
}

func (g *Gateway) mint(id Identity) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        domain.NewSuffixedID("sess", now),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Verify parses and validates a session token, returning its claims.
func (g *Gateway) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
