package service

import (
	"errors"
	"time"

	"tagarena/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService issues and validates account-scoped tokens. Login here is a
// thin guest mint; credential auth and registration live outside this core.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
	}
}

// GuestLogin issues a token bound to the given account name. An empty name
// gets a generated guest identity.
func (s *AuthService) GuestLogin(name string) (*model.GuestLoginResponse, error) {
	account := name
	if account == "" {
		account = "guest_" + uuid.New().String()[:8]
	}

	claims := &model.AccountClaims{
		Account: account,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.GuestLoginResponse{
		Token:   signed,
		Account: account,
	}, nil
}

// ValidateToken validates an account JWT and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AccountClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AccountClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
