package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
	"github.com/societyhub/dashboard/internal/infrastructure/store"
)

// stubAPI implements ports.SocietyAPI with overridable functions. Methods
// without an override fail the calling test.
type stubAPI struct {
	t *testing.T

	login   func(email, password string) (ports.TokenPair, error)
	refresh func(refreshToken string) (string, error)
	logout  func(accessToken string) error
	me      func(accessToken string) (*domain.User, error)
	change  func(accessToken, current, next string) error

	refreshCalls int
}

func newStubAPI(t *testing.T) *stubAPI {
	return &stubAPI{t: t}
}

func (s *stubAPI) Login(_ context.Context, email, password string) (ports.TokenPair, error) {
	if s.login == nil {
		s.t.Fatalf("unexpected Login call")
	}
	return s.login(email, password)
}

func (s *stubAPI) Refresh(_ context.Context, refreshToken string) (string, error) {
	s.refreshCalls++
	if s.refresh == nil {
		s.t.Fatalf("unexpected Refresh call")
	}
	return s.refresh(refreshToken)
}

func (s *stubAPI) Logout(_ context.Context, accessToken string) error {
	if s.logout == nil {
		return nil
	}
	return s.logout(accessToken)
}

func (s *stubAPI) Me(_ context.Context, accessToken string) (*domain.User, error) {
	if s.me == nil {
		s.t.Fatalf("unexpected Me call")
	}
	return s.me(accessToken)
}

func (s *stubAPI) ChangePassword(_ context.Context, accessToken, current, next string) error {
	if s.change == nil {
		s.t.Fatalf("unexpected ChangePassword call")
	}
	return s.change(accessToken, current, next)
}

func (s *stubAPI) Signup(context.Context, ports.SignupInput) (*domain.User, error) {
	s.t.Fatalf("unexpected Signup call")
	return nil, nil
}

func (s *stubAPI) ForgotPassword(context.Context, string) error {
	s.t.Fatalf("unexpected ForgotPassword call")
	return nil
}

func (s *stubAPI) ResetPassword(context.Context, string, string) error {
	s.t.Fatalf("unexpected ResetPassword call")
	return nil
}

func (s *stubAPI) ListSocieties(context.Context, string, domain.ApprovalStatus) ([]domain.Society, error) {
	s.t.Fatalf("unexpected ListSocieties call")
	return nil, nil
}

func (s *stubAPI) GetSociety(context.Context, string, string) (*domain.Society, error) {
	s.t.Fatalf("unexpected GetSociety call")
	return nil, nil
}

func (s *stubAPI) PublicSocieties(context.Context) ([]domain.Society, error) {
	s.t.Fatalf("unexpected PublicSocieties call")
	return nil, nil
}

func (s *stubAPI) CreateSociety(context.Context, string, ports.SocietyInput) (*domain.Society, error) {
	s.t.Fatalf("unexpected CreateSociety call")
	return nil, nil
}

func (s *stubAPI) ApproveSociety(context.Context, string, string, bool, string) (*domain.Society, error) {
	s.t.Fatalf("unexpected ApproveSociety call")
	return nil, nil
}

func (s *stubAPI) SocietyMembers(context.Context, string, string, domain.ApprovalStatus) ([]domain.SocietyMember, error) {
	s.t.Fatalf("unexpected SocietyMembers call")
	return nil, nil
}

func (s *stubAPI) ApproveMembership(context.Context, string, string, ports.MembershipDecision) (*domain.UserSociety, error) {
	s.t.Fatalf("unexpected ApproveMembership call")
	return nil, nil
}

func (s *stubAPI) ListUsers(context.Context, string) ([]domain.User, error) {
	s.t.Fatalf("unexpected ListUsers call")
	return nil, nil
}

func (s *stubAPI) UpdateUser(context.Context, string, string, ports.UserUpdateInput) (*domain.User, error) {
	s.t.Fatalf("unexpected UpdateUser call")
	return nil, nil
}

func newTestSessionService(api ports.SocietyAPI) (*SessionService, *store.MemorySessions) {
	sessions := store.NewMemorySessions()
	return NewSessionService(api, sessions, zerolog.Nop()), sessions
}

// signedToken mints an HS256 token expiring at the given time. The service
// only reads the exp claim, so any key works.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSessionService_Login_Success(t *testing.T) {
	api := newStubAPI(t)
	api.login = func(email, password string) (ports.TokenPair, error) {
		if email != "admin@test.com" || password != "password123" {
			t.Fatalf("credentials not forwarded: %s / %s", email, password)
		}
		return ports.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil
	}
	svc, sessions := newTestSessionService(api)

	session, err := svc.Login(context.Background(), "admin@test.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected a session ID")
	}
	if session.AccessToken != "access-1" || session.RefreshToken != "refresh-1" {
		t.Fatalf("tokens not stored: %+v", session)
	}
	if session.Theme != domain.ThemeDefault {
		t.Fatalf("expected default theme, got %q", session.Theme)
	}

	stored, err := sessions.Get(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.AccessToken != "access-1" {
		t.Fatalf("persisted session differs: %+v", stored)
	}
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	api := newStubAPI(t)
	api.login = func(string, string) (ports.TokenPair, error) {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}
	svc, _ := newTestSessionService(api)

	if _, err := svc.Login(context.Background(), "admin@test.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_Restore_Unknown(t *testing.T) {
	svc, _ := newTestSessionService(newStubAPI(t))

	if _, err := svc.Restore(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_Restore_LiveToken(t *testing.T) {
	api := newStubAPI(t)
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{
		ID:          "sess-1",
		AccessToken: signedToken(t, time.Now().Add(time.Hour)),
		Theme:       "ocean",
	}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored, err := svc.Restore(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.Theme != "ocean" {
		t.Fatalf("theme lost on restore: %+v", restored)
	}
	if api.refreshCalls != 0 {
		t.Fatalf("live token should not refresh, got %d calls", api.refreshCalls)
	}
}

func TestSessionService_Restore_ExpiredTokenRefreshes(t *testing.T) {
	api := newStubAPI(t)
	api.refresh = func(refreshToken string) (string, error) {
		if refreshToken != "refresh-1" {
			t.Fatalf("refresh token not forwarded: %q", refreshToken)
		}
		return "access-2", nil
	}
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{
		ID:           "sess-1",
		AccessToken:  signedToken(t, time.Now().Add(-time.Minute)),
		RefreshToken: "refresh-1",
	}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored, err := svc.Restore(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.AccessToken != "access-2" {
		t.Fatalf("access token not replaced: %+v", restored)
	}
	if api.refreshCalls != 1 {
		t.Fatalf("expected one refresh, got %d", api.refreshCalls)
	}

	stored, err := sessions.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("session gone after refresh: %v", err)
	}
	if stored.AccessToken != "access-2" {
		t.Fatalf("refreshed token not persisted: %+v", stored)
	}
}

func TestSessionService_Restore_RefreshFailureClearsSession(t *testing.T) {
	api := newStubAPI(t)
	api.refresh = func(string) (string, error) {
		return "", domain.ErrUnauthenticated
	}
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{
		ID:           "sess-1",
		AccessToken:  signedToken(t, time.Now().Add(-time.Minute)),
		RefreshToken: "refresh-1",
	}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Restore(context.Background(), "sess-1"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := sessions.Get(context.Background(), "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("dead session should be deleted, got %v", err)
	}
}

func TestSessionService_WithAuth_RefreshOnceAndRetry(t *testing.T) {
	api := newStubAPI(t)
	api.refresh = func(string) (string, error) { return "access-2", nil }
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1", RefreshToken: "refresh-1"}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	var calls []string
	err := svc.WithAuth(context.Background(), session, func(token string) error {
		calls = append(calls, token)
		if token == "access-1" {
			return domain.ErrUnauthenticated
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "access-1" || calls[1] != "access-2" {
		t.Fatalf("unexpected call sequence: %v", calls)
	}
	if api.refreshCalls != 1 {
		t.Fatalf("expected exactly one refresh, got %d", api.refreshCalls)
	}
}

func TestSessionService_WithAuth_SecondRejectionClearsSession(t *testing.T) {
	api := newStubAPI(t)
	api.refresh = func(string) (string, error) { return "access-2", nil }
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1", RefreshToken: "refresh-1"}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	err := svc.WithAuth(context.Background(), session, func(string) error {
		return domain.ErrUnauthenticated
	})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := sessions.Get(context.Background(), "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session should be cleared after second 401, got %v", err)
	}
}

func TestSessionService_WithAuth_NonAuthErrorPassesThrough(t *testing.T) {
	api := newStubAPI(t)
	svc, _ := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1"}
	boom := errors.New("boom")
	err := svc.WithAuth(context.Background(), session, func(string) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if api.refreshCalls != 0 {
		t.Fatalf("non-401 errors must not refresh, got %d calls", api.refreshCalls)
	}
}

func TestSessionService_CurrentUser(t *testing.T) {
	api := newStubAPI(t)
	api.me = func(token string) (*domain.User, error) {
		if token != "access-1" {
			t.Fatalf("token not forwarded: %q", token)
		}
		return &domain.User{ID: "usr_1", Email: "admin@test.com"}, nil
	}
	svc, _ := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1"}
	user, err := svc.CurrentUser(context.Background(), session)
	if err != nil {
		t.Fatalf("current user failed: %v", err)
	}
	if user.Email != "admin@test.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSessionService_CurrentUser_NoSession(t *testing.T) {
	svc, _ := newTestSessionService(newStubAPI(t))

	if _, err := svc.CurrentUser(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSessionService_Logout(t *testing.T) {
	api := newStubAPI(t)
	revoked := false
	api.logout = func(string) error {
		revoked = true
		return nil
	}
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1"}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.Logout(context.Background(), session); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !revoked {
		t.Fatalf("upstream logout not attempted")
	}
	if _, err := sessions.Get(context.Background(), "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session should be deleted, got %v", err)
	}

	// A second logout, and one without a session at all, are no-ops.
	if err := svc.Logout(context.Background(), session); err != nil {
		t.Fatalf("repeated logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), nil); err != nil {
		t.Fatalf("nil-session logout failed: %v", err)
	}
}

func TestSessionService_Logout_UpstreamFailureStillClears(t *testing.T) {
	api := newStubAPI(t)
	api.logout = func(string) error { return errors.New("backend down") }
	svc, sessions := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1"}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.Logout(context.Background(), session); err != nil {
		t.Fatalf("logout should tolerate upstream failure, got %v", err)
	}
	if _, err := sessions.Get(context.Background(), "sess-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session should be deleted, got %v", err)
	}
}

func TestSessionService_SetTheme(t *testing.T) {
	svc, sessions := newTestSessionService(newStubAPI(t))

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1"}
	if err := sessions.Save(context.Background(), session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.SetTheme(context.Background(), session, "plum"); err != nil {
		t.Fatalf("set theme failed: %v", err)
	}
	stored, err := sessions.Get(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Theme != "plum" {
		t.Fatalf("theme not persisted: %+v", stored)
	}
}

func TestSessionService_ChangePassword(t *testing.T) {
	api := newStubAPI(t)
	api.change = func(token, current, next string) error {
		if token != "access-1" || current != "old" || next != "newpassword" {
			t.Fatalf("arguments not forwarded: %q %q %q", token, current, next)
		}
		return nil
	}
	svc, _ := newTestSessionService(api)

	session := &domain.Session{ID: "sess-1", AccessToken: "access-1"}
	if err := svc.ChangePassword(context.Background(), session, "old", "newpassword"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	if tokenExpired(signedToken(t, now.Add(time.Hour)), now) {
		t.Fatalf("token an hour out should not count as expired")
	}
	if !tokenExpired(signedToken(t, now.Add(-time.Minute)), now) {
		t.Fatalf("past-exp token should count as expired")
	}
	// Inside the leeway window counts as expired too.
	if !tokenExpired(signedToken(t, now.Add(10*time.Second)), now) {
		t.Fatalf("token within leeway should count as expired")
	}
	// Opaque tokens are used optimistically.
	if tokenExpired("not-a-jwt", now) {
		t.Fatalf("unparseable token should not count as expired")
	}
}
