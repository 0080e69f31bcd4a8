package ports

import (
	"context"

	"github.com/societyhub/dashboard/internal/core/domain"
)

// TokenPair is the credential pair issued by the upstream login endpoint.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// SignupInput carries the registration form fields accepted upstream.
type SignupInput struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	SocietyID string `json:"society_id,omitempty"`
}

// SocietyInput carries the society-creation form fields.
type SocietyInput struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Pincode       string `json:"pincode,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	ContactEmail  string `json:"contact_email,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
}

// UserUpdateInput carries the editable profile fields. Nil pointers are
// omitted from the request body so upstream treats them as "unchanged".
type UserUpdateInput struct {
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// MembershipDecision is the approve/reject verdict for one membership.
type MembershipDecision struct {
	UserSocietyID   string `json:"user_society_id"`
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// SocietyAPI is the outbound contract against the society REST backend.
// Every method takes a context so an abandoned page load cancels the
// in-flight request. Failures carry the upstream status and detail (see
// upstream.APIError) wrapped around the matching domain sentinel.
type SocietyAPI interface {
	// Auth.
	Login(ctx context.Context, email, password string) (TokenPair, error)
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, accessToken string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, accessToken, current, next string) error

	// Societies.
	ListSocieties(ctx context.Context, accessToken string, status domain.ApprovalStatus) ([]domain.Society, error)
	GetSociety(ctx context.Context, accessToken, societyID string) (*domain.Society, error)
	PublicSocieties(ctx context.Context) ([]domain.Society, error)
	CreateSociety(ctx context.Context, accessToken string, in SocietyInput) (*domain.Society, error)
	ApproveSociety(ctx context.Context, accessToken, societyID string, approved bool, reason string) (*domain.Society, error)
	SocietyMembers(ctx context.Context, accessToken, societyID string, status domain.ApprovalStatus) ([]domain.SocietyMember, error)
	ApproveMembership(ctx context.Context, accessToken, societyID string, decision MembershipDecision) (*domain.UserSociety, error)

	// Users.
	ListUsers(ctx context.Context, accessToken string) ([]domain.User, error)
	UpdateUser(ctx context.Context, accessToken, userID string, in UserUpdateInput) (*domain.User, error)
}
