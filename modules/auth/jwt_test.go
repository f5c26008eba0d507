package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: 15 * time.Minute,
		Issuer:        "test-issuer",
	})

	token, err := manager.Generate(42, "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, 42)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "test@example.com")
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want %v", claims.Issuer, "test-issuer")
	}
	if claims.ID == "" {
		t.Error("claims.ID is empty")
	}
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())

	first, _ := manager.Generate(1, "a@example.com")
	second, _ := manager.Generate(1, "a@example.com")

	c1, err := manager.Validate(first)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	c2, err := manager.Validate(second)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if c1.ID == c2.ID {
		t.Errorf("token IDs collide: %s", c1.ID)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey:     "test-secret-key",
		TokenDuration: -time.Minute,
		Issuer:        "test-issuer",
	})

	token, err := manager.Generate(1, "test@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := manager.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrExpiredToken)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	signer := NewJWTManager(JWTConfig{SecretKey: "secret-1", TokenDuration: time.Minute})
	verifier := NewJWTManager(JWTConfig{SecretKey: "secret-2", TokenDuration: time.Minute})

	token, _ := signer.Generate(1, "test@example.com")
	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_RejectsNonHMAC(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())

	token := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: 1})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := manager.Validate(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password-1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !hasher.Verify("password-1", hash) {
		t.Error("Verify() = false for the right password")
	}
	if hasher.Verify("password-2", hash) {
		t.Error("Verify() = true for the wrong password")
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	tests := []struct {
		cost int
		want int
	}{
		{cost: 0, want: DefaultBcryptCost},
		{cost: 99, want: DefaultBcryptCost},
		{cost: bcrypt.MinCost, want: bcrypt.MinCost},
	}

	for _, tt := range tests {
		if got := NewPasswordHasher(tt.cost).cost; got != tt.want {
			t.Errorf("NewPasswordHasher(%d).cost = %d, want %d", tt.cost, got, tt.want)
		}
	}
}
