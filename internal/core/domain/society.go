package domain

import "time"

// Society is a residential community managed through the dashboard.
// Created via a form, initially pending, and moved to approved/rejected
// only by a developer-only action upstream.
type Society struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	City           string         `json:"city,omitempty"`
	State          string         `json:"state,omitempty"`
	Pincode        string         `json:"pincode,omitempty"`
	ContactPerson  string         `json:"contact_person,omitempty"`
	ContactEmail   string         `json:"contact_email,omitempty"`
	ContactPhone   string         `json:"contact_phone,omitempty"`
	LogoURL        string         `json:"logo_url,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	ApprovedBy     string         `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time     `json:"approved_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// SocietyMember is one row of a society's member list as returned by the
// upstream members endpoint: the membership plus the member's profile.
type SocietyMember struct {
	UserSociety
	User *User `json:"user,omitempty"`
}
