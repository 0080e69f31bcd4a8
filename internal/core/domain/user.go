package domain

import "time"

// Role is a global role that applies across the whole application,
// independent of any specific society.
type Role string

const (
	RoleMember    Role = "member"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// ApprovalStatus is the lifecycle state of a society or a membership.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// User is the profile snapshot returned by the upstream API. It is
// read-mostly: replaced wholesale after a fetch, never merged field by field.
type User struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	FullName      string         `json:"full_name"`
	Phone         string         `json:"phone"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	GlobalRole    Role           `json:"global_role"`
	IsActive      bool           `json:"is_active"`
	Settings      map[string]any `json:"settings,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	UserSocieties []UserSociety  `json:"user_societies"`
}

// UserSociety links a user to one society, including the role the user holds
// there and whether an administrator has approved the membership.
type UserSociety struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	SocietyID      string          `json:"society_id"`
	Society        *SocietySummary `json:"society,omitempty"`
	Role           Role            `json:"role"`
	ApprovalStatus ApprovalStatus  `json:"approval_status"`
	FlatNo         string          `json:"flat_no,omitempty"`
	Wing           string          `json:"wing,omitempty"`
	IsPrimary      bool            `json:"is_primary"`
	JoinedAt       time.Time       `json:"joined_at"`
}

// SocietySummary is the denormalized society slice embedded in a membership.
type SocietySummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
}
