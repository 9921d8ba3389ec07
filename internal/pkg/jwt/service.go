// Package jwt validates the HMAC bearer tokens that collaborator
// services present when calling the matching API. Tokens are minted by
// the platform auth service with the shared secret; Issue exists for
// local tooling and tests.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	// CallerID identifies the calling service instance or operator.
	CallerID uuid.UUID `json:"caller_id"`
	// Service names the calling system, e.g. "job-service".
	Service string `json:"service,omitempty"`
	// Scopes lists the API areas the token grants. An empty list
	// grants everything; tokens minted before scoping carry none.
	Scopes []string `json:"scopes,omitempty"`

	jwtlib.RegisteredClaims
}

// Allows reports whether the claims grant the named scope.
func (c Claims) Allows(scope string) bool {
	if len(c.Scopes) == 0 {
		return true
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

type Service interface {
	Issue(callerID uuid.UUID, service string, scopes []string) (string, error)
	Validate(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string

	now func() time.Time
}

func NewHMACService(secret, issuer string, expiresIn time.Duration) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		issuer:    issuer,
		now:       time.Now,
	}
}

func (s *HMACService) Issue(callerID uuid.UUID, service string, scopes []string) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	claims := Claims{
		CallerID: callerID,
		Service:  service,
		Scopes:   scopes,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   callerID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *HMACService) Validate(tokenString string) (Claims, error) {
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return s.now().UTC() }),
	)

	var claims Claims
	tok, err := parser.ParseWithClaims(tokenString, &claims, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if claims.CallerID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}

	return claims, nil
}
