// Package session carries the verified caller identity through the service
// layer and converts it to and from signed bearer tokens.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"driveu/internal/domain"
)

// ErrInvalidToken is returned when a bearer token cannot be verified.
var ErrInvalidToken = errors.New("invalid or expired token")

// Session is the authenticated caller of a service operation.
type Session struct {
	UserID    string
	Role      domain.Role
	Name      string
	ExpiresAt time.Time
}

// IsOwner reports whether the caller is a car owner.
func (s Session) IsOwner() bool { return s.Role == domain.RoleOwner }

// IsDriver reports whether the caller is a driver.
func (s Session) IsDriver() bool { return s.Role == domain.RoleDriver }

// claims is the JWT payload. The subject holds the user id.
type claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret      []byte
	accessTTL   time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewIssuer creates an Issuer. rememberTTL applies when the caller asks to
// stay signed in.
func NewIssuer(secret string, accessTTL, rememberTTL time.Duration) *Issuer {
	return &Issuer{
		secret:      []byte(secret),
		accessTTL:   accessTTL,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

// Issue signs a token for the user and returns it with the matching Session.
func (i *Issuer) Issue(userID string, role domain.Role, name string, remember bool) (string, Session, error) {
	ttl := i.accessTTL
	if remember {
		ttl = i.rememberTTL
	}
	now := i.now()
	expires := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Role: string(role),
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, Session{
		UserID:    userID,
		Role:      role,
		Name:      name,
		ExpiresAt: expires.Truncate(time.Second),
	}, nil
}

// Parse verifies a token and returns the Session it encodes.
func (i *Issuer) Parse(tokenStr string) (Session, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(tokenStr, c, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role := domain.Role(c.Role)
	if c.Subject == "" || !role.Valid() {
		return Session{}, ErrInvalidToken
	}

	return Session{
		UserID:    c.Subject,
		Role:      role,
		Name:      c.Name,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
