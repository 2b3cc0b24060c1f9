// Package signing issues and verifies the credentials attached to a signing
// invitation: a short-lived token binding the invitation to one agreement and
// one role, plus an access code the signer must present, stored only as a
// bcrypt hash.
package signing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"agreementflow/agreement"
)

var (
	// ErrInvalidToken signals a token that failed parsing or validation.
	ErrInvalidToken = errors.New("signing: invalid token")
	// ErrAccessCodeMismatch signals a wrong access code.
	ErrAccessCodeMismatch = errors.New("signing: access code mismatch")
)

// Invitation identifies what a verified token authorizes: one role signing
// one agreement.
type Invitation struct {
	AgreementID string
	Role        agreement.SignerRole
}

// TokenService mints and verifies signing-invitation tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue creates a token for the given agreement and role.
func (s *TokenService) Issue(agreementID string, role agreement.SignerRole) (string, error) {
	if agreementID == "" {
		return "", fmt.Errorf("signing: missing agreement id")
	}
	if role != agreement.SignerAgency && role != agreement.SignerClient {
		return "", fmt.Errorf("signing: unknown signer role %q", role)
	}

	issuedAt := s.now()
	claims := jwt.MapClaims{
		"agreement_id": agreementID,
		"role":         string(role),
		"iat":          issuedAt.Unix(),
		"exp":          issuedAt.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the invitation it carries.
func (s *TokenService) Verify(tokenString string) (Invitation, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return Invitation{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Invitation{}, ErrInvalidToken
	}

	agreementID, ok := claims["agreement_id"].(string)
	if !ok || agreementID == "" {
		return Invitation{}, fmt.Errorf("%w: missing agreement_id", ErrInvalidToken)
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return Invitation{}, fmt.Errorf("%w: missing role", ErrInvalidToken)
	}
	role := agreement.SignerRole(roleStr)
	if role != agreement.SignerAgency && role != agreement.SignerClient {
		return Invitation{}, fmt.Errorf("%w: role %q", ErrInvalidToken, roleStr)
	}

	return Invitation{AgreementID: agreementID, Role: role}, nil
}

// HashAccessCode hashes a signer access code for storage.
func HashAccessCode(code string) (string, error) {
	if len(code) < 6 {
		return "", fmt.Errorf("signing: access code must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("signing: hash access code: %w", err)
	}
	return string(hash), nil
}

// VerifyAccessCode compares a presented code against the stored hash.
func VerifyAccessCode(hash, code string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return ErrAccessCodeMismatch
	}
	return nil
}
