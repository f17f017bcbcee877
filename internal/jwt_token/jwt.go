// Package jwttoken signs the one-off tokens emailed to users: password
// reset links and supplier invitations.
package jwttoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "supplierfront/pkg/domain-errors"
)

const (
	ResetPasswordMaxAge = 24 * time.Hour
	InviteMaxAge        = 7 * 24 * time.Hour
)

// ResetPasswordClaims identifies the user a reset link was sent to.
type ResetPasswordClaims struct {
	UserID       int64  `json:"user"`
	EmailAddress string `json:"email"`
	jwt.RegisteredClaims
}

// InviteClaims carries the supplier a new user is invited to join.
type InviteClaims struct {
	SupplierID   int64  `json:"supplier_id"`
	SupplierName string `json:"supplier_name"`
	EmailAddress string `json:"email_address"`
	jwt.RegisteredClaims
}

// Service signs tokens with a key derived from the secret and a salt, so a
// reset token can never be replayed as an invitation.
type Service struct {
	signingKey []byte
	maxAge     time.Duration
	now        func() time.Time
}

func NewService(secretKey, salt string, maxAge time.Duration) *Service {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(salt))
	return &Service{signingKey: mac.Sum(nil), maxAge: maxAge, now: time.Now}
}

func (s *Service) registered() jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
}

func (s *Service) GenerateResetPasswordToken(userID int64, email string) (string, error) {
	return s.sign(&ResetPasswordClaims{UserID: userID, EmailAddress: email, RegisteredClaims: s.registered()})
}

func (s *Service) GenerateInviteToken(supplierID int64, supplierName, email string) (string, error) {
	return s.sign(&InviteClaims{
		SupplierID:       supplierID,
		SupplierName:     supplierName,
		EmailAddress:     email,
		RegisteredClaims: s.registered(),
	})
}

func (s *Service) ValidateResetPasswordToken(token string) (*ResetPasswordClaims, error) {
	claims := &ResetPasswordClaims{}
	if err := s.validate(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) ValidateInviteToken(token string) (*InviteClaims, error) {
	claims := &InviteClaims{}
	if err := s.validate(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Service) validate(token string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	var de *dErrors.Error
	return errors.As(err, &de) && de.Code == dErrors.CodeUnauthorized && de.Message == "token has expired"
}
