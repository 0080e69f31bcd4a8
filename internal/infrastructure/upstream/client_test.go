package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
	"github.com/societyhub/dashboard/internal/mockapi"
)

func newTestClient(t *testing.T) (*Client, *mockapi.Server) {
	t.Helper()
	mock := mockapi.New()
	srv := httptest.NewServer(mock)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL}), mock
}

func login(t *testing.T, c *Client, email, password string) ports.TokenPair {
	t.Helper()
	pair, err := c.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return pair
}

func TestClient_Login(t *testing.T) {
	c, _ := newTestClient(t)

	pair := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
}

func TestClient_Login_WrongPassword(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Login(context.Background(), mockapi.AdminEmail, "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.Status)
	}
	if apiErr.Detail != "Invalid email or password" {
		t.Fatalf("unexpected detail: %q", apiErr.Detail)
	}
}

func TestClient_Me(t *testing.T) {
	c, _ := newTestClient(t)
	pair := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)

	user, err := c.Me(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if user.Email != mockapi.AdminEmail {
		t.Fatalf("unexpected profile: %+v", user)
	}
	if len(user.UserSocieties) != 1 || user.UserSocieties[0].SocietyID != mockapi.ApprovedSocietyID {
		t.Fatalf("memberships not decoded: %+v", user.UserSocieties)
	}
}

func TestClient_Me_BadToken(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Me(context.Background(), "garbage")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestClient_Refresh(t *testing.T) {
	c, _ := newTestClient(t)
	pair := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)

	access, err := c.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if access == "" {
		t.Fatalf("expected a fresh access token")
	}

	if _, err := c.Refresh(context.Background(), "stale"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for stale refresh token, got %v", err)
	}
}

func TestClient_Signup_Conflict(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Signup(context.Background(), ports.SignupInput{
		Email:    mockapi.ExistingEmail,
		FullName: "Someone Else",
		Phone:    "+910000000000",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestClient_Signup_WithSociety(t *testing.T) {
	c, _ := newTestClient(t)

	user, err := c.Signup(context.Background(), ports.SignupInput{
		Email:     "newcomer@test.com",
		FullName:  "New Comer",
		Phone:     "+919999999999",
		Password:  "password123",
		SocietyID: mockapi.ApprovedSocietyID,
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if len(user.UserSocieties) != 1 {
		t.Fatalf("expected one membership request, got %+v", user.UserSocieties)
	}
	if user.UserSocieties[0].ApprovalStatus != domain.ApprovalPending {
		t.Fatalf("new membership should be pending: %+v", user.UserSocieties[0])
	}
}

func TestClient_ResetPassword(t *testing.T) {
	c, _ := newTestClient(t)

	if err := c.ResetPassword(context.Background(), mockapi.ResetToken, "fresh-password"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	// The new password works, the token is single use.
	login(t, c, mockapi.AdminEmail, "fresh-password")
	if err := c.ResetPassword(context.Background(), mockapi.ResetToken, "again"); err == nil {
		t.Fatalf("expected second reset with same token to fail")
	}
}

func TestClient_GetSociety_NotFound(t *testing.T) {
	c, _ := newTestClient(t)
	pair := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)

	_, err := c.GetSociety(context.Background(), pair.AccessToken, "soc_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ListSocieties_FilterByStatus(t *testing.T) {
	c, _ := newTestClient(t)
	pair := login(t, c, mockapi.DeveloperEmail, mockapi.DeveloperPassword)

	pending, err := c.ListSocieties(context.Background(), pair.AccessToken, domain.ApprovalPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != mockapi.PendingSocietyID {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	approved, err := c.ListSocieties(context.Background(), pair.AccessToken, domain.ApprovalApproved)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != mockapi.ApprovedSocietyID {
		t.Fatalf("unexpected approved list: %+v", approved)
	}
}

func TestClient_ApproveSociety_RequiresDeveloper(t *testing.T) {
	c, _ := newTestClient(t)
	admin := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)

	_, err := c.ApproveSociety(context.Background(), admin.AccessToken, mockapi.PendingSocietyID, true, "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}

	dev := login(t, c, mockapi.DeveloperEmail, mockapi.DeveloperPassword)
	society, err := c.ApproveSociety(context.Background(), dev.AccessToken, mockapi.PendingSocietyID, true, "")
	if err != nil {
		t.Fatalf("developer approval failed: %v", err)
	}
	if society.ApprovalStatus != domain.ApprovalApproved {
		t.Fatalf("status not flipped: %+v", society)
	}
}

func TestClient_ApproveMembership(t *testing.T) {
	c, _ := newTestClient(t)
	pair := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)

	members, err := c.SocietyMembers(context.Background(), pair.AccessToken, mockapi.ApprovedSocietyID, domain.ApprovalPending)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected one pending membership, got %+v", members)
	}

	updated, err := c.ApproveMembership(context.Background(), pair.AccessToken, mockapi.ApprovedSocietyID, ports.MembershipDecision{
		UserSocietyID: members[0].ID,
		Approved:      true,
	})
	if err != nil {
		t.Fatalf("approve membership: %v", err)
	}
	if updated.ApprovalStatus != domain.ApprovalApproved {
		t.Fatalf("membership not approved: %+v", updated)
	}

	remaining, err := c.SocietyMembers(context.Background(), pair.AccessToken, mockapi.ApprovedSocietyID, domain.ApprovalPending)
	if err != nil {
		t.Fatalf("members after approval: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("pending list should be empty, got %+v", remaining)
	}
}

func TestClient_UpdateUser_EmailConflict(t *testing.T) {
	c, _ := newTestClient(t)
	pair := login(t, c, mockapi.AdminEmail, mockapi.AdminPassword)

	users, err := c.ListUsers(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}

	var pendingID string
	for _, u := range users {
		if u.Email == mockapi.PendingEmail {
			pendingID = u.ID
		}
	}
	if pendingID == "" {
		t.Fatalf("pending user not listed")
	}

	taken := mockapi.ExistingEmail
	_, err = c.UpdateUser(context.Background(), pair.AccessToken, pendingID, ports.UserUpdateInput{Email: &taken})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestClient_PublicSocieties(t *testing.T) {
	c, _ := newTestClient(t)

	societies, err := c.PublicSocieties(context.Background())
	if err != nil {
		t.Fatalf("public societies: %v", err)
	}
	if len(societies) != 1 || societies[0].ID != mockapi.ApprovedSocietyID {
		t.Fatalf("expected only the approved society, got %+v", societies)
	}
}

func TestClient_Ping(t *testing.T) {
	c, _ := newTestClient(t)

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
