// Package auth registers shop users and issues session tokens.
package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/go-monolith/mono/pkg/types"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too short.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrUserExists is returned when the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrRevokedToken is returned when a logged-out token is presented.
	ErrRevokedToken = errors.New("token has been revoked")
)

// Session is the result of a successful login.
type Session struct {
	Token     string `json:"access_token"`
	ExpiresIn int64  `json:"expires_in"`
	TokenType string `json:"token_type"`
}

// Service handles registration, login and logout.
type Service struct {
	store   *shop.Store
	hasher  *PasswordHasher
	jwt     *JWTManager
	logger  types.Logger
	revoked map[string]time.Time // token ID -> expiry
	mu      sync.Mutex
}

// NewService creates a new auth service.
func NewService(store *shop.Store, hasher *PasswordHasher, jwt *JWTManager, logger types.Logger) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		jwt:     jwt,
		logger:  logger,
		revoked: make(map[string]time.Time),
	}
}

// Register stores a user with a hashed password.
func (s *Service) Register(user shop.User, password string) (shop.User, error) {
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return shop.User{}, ErrInvalidEmail
	}
	if len(password) < 8 {
		return shop.User{}, ErrWeakPassword
	}
	if len(password) > 72 {
		return shop.User{}, ErrPasswordTooLong
	}
	if _, exists := s.store.UserByEmail(user.Email); exists {
		return shop.User{}, ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return shop.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	s.store.PutUser(user)

	s.logger.Info("User registered", "userID", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the credentials and returns a signed session token.
func (s *Service) Login(email, password string) (Session, error) {
	user, exists := s.store.UserByEmail(email)
	if !exists || !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn("Invalid credentials", "email", email)
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Access granted", "email", email)
	return Session{
		Token:     token,
		ExpiresIn: s.jwt.TokenDuration(),
		TokenType: "Bearer",
	}, nil
}

// Validate returns the claims of a live, non-revoked token.
func (s *Service) Validate(token string) (*JWTClaims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Logout revokes the token. Revoking an already revoked token is a no-op.
func (s *Service) Logout(token string) error {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	s.logger.Info("Token revoked", "userID", claims.UserID)
	return nil
}

// pruneLocked forgets revocations whose tokens have expired anyway.
func (s *Service) pruneLocked(now time.Time) {
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}
