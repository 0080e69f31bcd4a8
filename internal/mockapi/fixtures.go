package mockapi

import (
	"time"

	"github.com/societyhub/dashboard/internal/core/domain"
)

// Sentinel fixtures. Tests drive handler branches by using these exact
// values, mirroring the contract the real backend seeds in development.
const (
	AdminEmail    = "admin@test.com"
	AdminPassword = "password123"

	DeveloperEmail    = "dev@test.com"
	DeveloperPassword = "password123"

	PendingEmail    = "pending@test.com"
	PendingPassword = "password123"

	// ExistingEmail always conflicts on signup.
	ExistingEmail = "existing@test.com"

	// ResetToken is the one reset token the mock accepts.
	ResetToken = "valid-reset-token"

	ApprovedSocietyID = "soc_green_valley"
	PendingSocietyID  = "soc_sunrise"
)

func (s *Server) seed() {
	now := time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

	approved := &domain.Society{
		ID:             ApprovedSocietyID,
		Name:           "Green Valley Residency",
		Address:        "12 Hill Road",
		City:           "Pune",
		State:          "Maharashtra",
		Pincode:        "411001",
		ContactPerson:  "R. Deshmukh",
		ContactEmail:   "office@greenvalley.test",
		ContactPhone:   "+911234567890",
		ApprovalStatus: domain.ApprovalApproved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	pending := &domain.Society{
		ID:             PendingSocietyID,
		Name:           "Sunrise Towers",
		Address:        "4 Lake View Lane",
		City:           "Mumbai",
		State:          "Maharashtra",
		Pincode:        "400050",
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.societies[approved.ID] = approved
	s.societies[pending.ID] = pending

	admin := &mockUser{
		User: domain.User{
			ID:         "usr_admin",
			Email:      AdminEmail,
			FullName:   "Asha Kulkarni",
			Phone:      "+919876543210",
			GlobalRole: domain.RoleAdmin,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
			UserSocieties: []domain.UserSociety{{
				ID:        "mem_admin_green_valley",
				UserID:    "usr_admin",
				SocietyID: approved.ID,
				Society: &domain.SocietySummary{
					ID: approved.ID, Name: approved.Name, Address: approved.Address, City: approved.City,
				},
				Role:           domain.RoleAdmin,
				ApprovalStatus: domain.ApprovalApproved,
				IsPrimary:      true,
				JoinedAt:       now,
			}},
		},
		Password: AdminPassword,
	}

	developer := &mockUser{
		User: domain.User{
			ID:         "usr_developer",
			Email:      DeveloperEmail,
			FullName:   "Dev Rao",
			Phone:      "+919876500000",
			GlobalRole: domain.RoleDeveloper,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
			// Deliberately no memberships: developers bypass approval.
		},
		Password: DeveloperPassword,
	}

	pendingUser := &mockUser{
		User: domain.User{
			ID:         "usr_pending",
			Email:      PendingEmail,
			FullName:   "Nikhil Shah",
			Phone:      "+919876511111",
			GlobalRole: domain.RoleMember,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
			UserSocieties: []domain.UserSociety{{
				ID:        "mem_pending_green_valley",
				UserID:    "usr_pending",
				SocietyID: approved.ID,
				Society: &domain.SocietySummary{
					ID: approved.ID, Name: approved.Name, Address: approved.Address, City: approved.City,
				},
				Role:           domain.RoleMember,
				ApprovalStatus: domain.ApprovalPending,
				JoinedAt:       now,
			}},
		},
		Password: PendingPassword,
	}

	existing := &mockUser{
		User: domain.User{
			ID:         "usr_existing",
			Email:      ExistingEmail,
			FullName:   "Existing Member",
			Phone:      "+919876522222",
			GlobalRole: domain.RoleMember,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		Password: "password123",
	}

	for _, u := range []*mockUser{admin, developer, pendingUser, existing} {
		s.users[u.ID] = u
	}

	s.resetTokens[ResetToken] = admin.ID
}
