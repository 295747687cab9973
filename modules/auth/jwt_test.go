package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	}
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateAccessToken("user-123", "test@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("expected user ID %q, got %q", "user-123", claims.UserID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("expected email %q, got %q", "test@example.com", claims.Email)
	}
	if claims.Role != "user" {
		t.Errorf("expected role %q, got %q", "user", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected token type %q, got %q", "access", claims.TokenType)
	}
}

func TestJWTManager_TokenTypeEnforced(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	access, err := manager.GenerateAccessToken("user-123", "test@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken("user-123", "test@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := manager.ValidateAccessToken(refresh)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		_, err := manager.ValidateRefreshToken(access)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestJWTManager_InvalidTokens(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	t.Run("garbage token", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager(JWTConfig{
			SecretKey:            "different-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: time.Hour,
			Issuer:               "test-issuer",
		})
		token, err := other.GenerateAccessToken("user-123", "test@example.com", "user")
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		_, err = manager.ValidateToken(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager(JWTConfig{
			SecretKey:            "test-secret-key",
			AccessTokenDuration:  -time.Minute,
			RefreshTokenDuration: time.Hour,
			Issuer:               "test-issuer",
		})
		token, err := expired.GenerateAccessToken("user-123", "test@example.com", "user")
		if err != nil {
			t.Fatalf("GenerateAccessToken() error = %v", err)
		}

		_, err = manager.ValidateToken(token)
		if !errors.Is(err, ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})
}
