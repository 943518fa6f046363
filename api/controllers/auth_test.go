package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enginequip/quotation-backend/api/middleware"
	"github.com/enginequip/quotation-backend/internal/auth"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/enginequip/quotation-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type stubAuthService struct {
	result       *auth.LoginResult
	user         *auth.UserDTO
	err          error
	loggedOutIDs []string
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	return s.result, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.loggedOutIDs = append(s.loggedOutIDs, accessID)
	return s.err
}

func (s *stubAuthService) Me(ctx context.Context, userID int) (*auth.UserDTO, error) {
	return s.user, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{result: &auth.LoginResult{
		User:         auth.UserDTO{ID: 1, Username: "staff1", Role: "staff"},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}}
	handler := AuthLogin(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"staff1","password":"staff123"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken string       `json:"access_token"`
			User        auth.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload got %+v", envelope.Data)
	}
	if envelope.Data.User.Username != "staff1" {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginMissingPassword(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"staff1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginRejected(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"username":"staff1","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLogout(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), 1, "staff1", "staff", "access-id-1"))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.loggedOutIDs) != 1 || svc.loggedOutIDs[0] != "access-id-1" {
		t.Fatalf("expected logout with access-id-1 got %v", svc.loggedOutIDs)
	}
}

func TestAuthLogoutWithoutSession(t *testing.T) {
	handler := AuthLogout(&stubAuthService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthMe(t *testing.T) {
	svc := &stubAuthService{user: &auth.UserDTO{ID: 7, Username: "admin", Role: "admin"}}
	handler := AuthMe(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), 7, "admin", "admin", "access-id-7"))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			User auth.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User.ID != 7 || envelope.Data.User.Username != "admin" {
		t.Fatalf("expected admin user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthMeWithoutIdentity(t *testing.T) {
	handler := AuthMe(&stubAuthService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
