package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	domain "github.com/jngonzales/E-Commerce/domain/user"
	"github.com/jngonzales/E-Commerce/modules/auth"
)

// mockAuthPort implements auth.AuthPort for testing.
type mockAuthPort struct {
	validateTokenFunc func(ctx context.Context, token string) (*domain.Claims, error)
	getUserFunc       func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) Register(context.Context, auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) Refresh(context.Context, auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return nil, errors.New("not implemented")
}

func validClaims(role string) *mockAuthPort {
	return &mockAuthPort{
		validateTokenFunc: func(_ context.Context, _ string) (*domain.Claims, error) {
			return &domain.Claims{UserID: "user-123", Email: "test@example.com", Role: role}, nil
		},
	}
}

func TestAuthRequired(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockAuth       *mockAuthPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authorization header required",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic token123",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid authorization header format",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			mockAuth: &mockAuthPort{
				validateTokenFunc: func(_ context.Context, _ string) (*domain.Claims, error) {
					return nil, errors.New("invalid token")
				},
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid token",
		},
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			mockAuth:       validClaims("user"),
			expectedStatus: http.StatusOK,
			expectedBody:   "authenticated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthRequired(tt.mockAuth))
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "authenticated"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", string(body), tt.expectedBody)
			}
		})
	}
}

func TestAuthRequired_StoresClaims(t *testing.T) {
	app := fiber.New()
	app.Use(AuthRequired(validClaims("admin")))

	var captured *domain.Claims
	app.Get("/test", func(c *fiber.Ctx) error {
		captured = ClaimsFromContext(c)
		return c.JSON(fiber.Map{"status": "ok"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("claims not set in context")
	}
	if captured.UserID != "user-123" || captured.Role != "admin" {
		t.Errorf("unexpected claims: %+v", captured)
	}
}

func TestAdminRequired(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"user forbidden", "user", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(AuthRequired(validClaims(tt.role)))
			app.Use(AdminRequired())
			app.Get("/test", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "ok"})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer good-token")

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %v, want %v", resp.StatusCode, tt.expectedStatus)
			}
		})
	}
}

func TestAdminRequired_WithoutAuth(t *testing.T) {
	app := fiber.New()
	app.Use(AdminRequired())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.New("product not found"), http.StatusNotFound},
		{errors.New("insufficient stock for Headphones"), http.StatusBadRequest},
		{errors.New("slug already exists"), http.StatusBadRequest},
		{errors.New("no order items"), http.StatusBadRequest},
		{errors.New("invalid order status: lost"), http.StatusBadRequest},
		{errors.New("not authorized to view this order"), http.StatusForbidden},
		{errors.New("invalid email or password"), http.StatusUnauthorized},
		{errors.New("category is referenced by products"), http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Errorf("statusForError(%q) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
