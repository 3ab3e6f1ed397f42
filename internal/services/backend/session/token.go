package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "studydesk"

// ErrInvalidToken indicates a token that failed parsing or signature checks.
var ErrInvalidToken = errors.New("invalid session token")

// Signer mints and parses the JWT access tokens handed to clients.
//
// The token's jti is the durable session id, so token validity is always
// checked against the session store as well: revocation wins over a token
// that still verifies.
type Signer struct {
	secret []byte
	clock  func() time.Time
}

// NewSigner builds a token signer from a shared secret.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	return &Signer{secret: secret, clock: time.Now}, nil
}

// Sign mints an access token for a session.
func (s *Signer) Sign(sess Session) (string, error) {
	if s == nil {
		return "", errors.New("signer is required")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sess.UserID,
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the referenced session and user ids.
func (s *Signer) Parse(raw string) (sessionID string, userID string, err error) {
	if s == nil {
		return "", "", errors.New("signer is required")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrExpired
		}
		return "", "", ErrInvalidToken
	}
	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.ID, claims.Subject, nil
}
