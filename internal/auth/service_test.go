package auth

import (
	"context"
	"testing"

	"gorm.io/gorm"

	pkgauth "github.com/enginequip/quotation-backend/pkg/auth"
	"github.com/enginequip/quotation-backend/pkg/config"
	"github.com/enginequip/quotation-backend/pkg/db/models"
	"github.com/enginequip/quotation-backend/pkg/enums"
	pkgerrors "github.com/enginequip/quotation-backend/pkg/errors"
	"github.com/enginequip/quotation-backend/pkg/security"
)

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "quotation-backend-test",
	ExpirationMinutes: 15,
}

var testPasswordCfg = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

type stubUsers struct {
	byName map[string]*models.User
	byID   map[int]*models.User
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := s.byName[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) FindByID(_ context.Context, id int) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessions struct {
	generated []string
	revoked   []string
}

func (s *stubSessions) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-token", nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func seedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &models.User{ID: 1, Username: "staff1", PasswordHash: hash, Role: enums.RoleStaff}
}

func TestLoginSuccess(t *testing.T) {
	user := seedUser(t, "staff123")
	sessions := &stubSessions{}
	svc, err := NewService(&stubUsers{byName: map[string]*models.User{"staff1": user}}, sessions, testJWTCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Login(context.Background(), "staff1", "staff123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.Username != "staff1" || result.User.Role != enums.RoleStaff {
		t.Fatalf("unexpected user %+v", result.User)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected minted credentials")
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}

	claims, err := pkgauth.ParseAccessToken(testJWTCfg, result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "staff1" || claims.ID != sessions.generated[0] {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := seedUser(t, "staff123")
	svc, _ := NewService(&stubUsers{byName: map[string]*models.User{"staff1": user}}, &stubSessions{}, testJWTCfg)

	_, err := svc.Login(context.Background(), "staff1", "wrong")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	user := seedUser(t, "staff123")
	svc, _ := NewService(&stubUsers{byName: map[string]*models.User{"staff1": user}}, &stubSessions{}, testJWTCfg)

	_, wrongPass := svc.Login(context.Background(), "staff1", "wrong")
	_, unknown := svc.Login(context.Background(), "ghost", "staff123")
	if wrongPass == nil || unknown == nil {
		t.Fatal("expected both logins to fail")
	}
	if pkgerrors.As(wrongPass).Message() != pkgerrors.As(unknown).Message() {
		t.Fatal("unknown user and wrong password must be indistinguishable")
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := NewService(&stubUsers{}, &stubSessions{}, testJWTCfg)

	_, err := svc.Login(context.Background(), "  ", "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := &stubSessions{}
	svc, _ := NewService(&stubUsers{}, sessions, testJWTCfg)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("unexpected revocations %v", sessions.revoked)
	}
}

func TestMe(t *testing.T) {
	user := seedUser(t, "staff123")
	svc, _ := NewService(&stubUsers{byID: map[int]*models.User{1: user}}, &stubSessions{}, testJWTCfg)

	me, err := svc.Me(context.Background(), 1)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Username != "staff1" {
		t.Fatalf("unexpected user %+v", me)
	}

	_, err = svc.Me(context.Background(), 42)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}
