package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/jngonzales/E-Commerce/domain/user"
)

// AuthPort is the interface other modules use to access auth functionality.
type AuthPort interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates a new user account.
func (a *AuthAdapter) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "register",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

// Login verifies credentials and returns a token pair.
func (a *AuthAdapter) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "login",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (a *AuthAdapter) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "refresh-token",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

// ValidateToken validates an access token and returns the caller identity.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "validate-token",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &domain.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
		Role:   resp.Role,
	}, nil
}

// GetUser retrieves a user by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-user",
		json.Marshal, json.Unmarshal,
		&req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-user request failed: %w", err)
	}

	return &domain.User{
		ID:        resp.ID,
		Name:      resp.Name,
		Email:     resp.Email,
		Role:      resp.Role,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// restoreSentinel maps errors coming back over the service container to
// the package sentinels. Errors are flattened to their message in transit,
// so the mapping has to match on text.
func restoreSentinel(err error) error {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrUserNotFound,
		ErrUserExists,
		ErrInvalidCredentials,
		ErrInvalidEmail,
		ErrNameRequired,
		ErrWeakPassword,
		ErrPasswordTooLong,
		ErrInvalidToken,
		ErrExpiredToken,
	} {
		if strings.Contains(msg, sentinel.Error()) {
			return sentinel
		}
	}
	return err
}
