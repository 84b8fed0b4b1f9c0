// Package visitor mints and verifies the anonymous visitor token that scopes a browser's
// cart and preferences. It identifies a browser, it does not authenticate a person.
package visitor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/luxe-storefront/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var signingMethod = jwt.SigningMethodHS256

// Tokens issues and parses visitor tokens.
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(cfg config.VisitorConfig) (*Tokens, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("visitor secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("visitor ttl must be positive")
	}
	return &Tokens{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// TTL returns how long an issued token stays valid.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue mints a token for a brand new visitor and returns both.
func (t *Tokens) Issue() (visitorID, token string, err error) {
	visitorID = uuid.NewString()
	token, err = t.Sign(visitorID)
	return visitorID, token, err
}

// Sign mints a token for an existing visitor id.
func (t *Tokens) Sign(visitorID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing visitor token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the visitor id it carries.
func (t *Tokens) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(tok *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", err
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("visitor token subject: %w", err)
	}
	return claims.Subject, nil
}
