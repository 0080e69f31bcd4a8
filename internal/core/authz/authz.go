// Package authz is the single authorization predicate for the dashboard.
// Every guarded surface (route guard, navigation chrome, developer-only
// actions) consumes Evaluate instead of re-deriving role and approval
// checks inline.
package authz

import "github.com/societyhub/dashboard/internal/core/domain"

// Decision is the outcome of evaluating a user against the dashboard gate.
type Decision int

const (
	// DecisionAllow grants full dashboard access.
	DecisionAllow Decision = iota
	// DecisionPending sends the user to the pending-approval page: no
	// approved membership in any society, and no developer bypass.
	DecisionPending
)

// Evaluate decides dashboard access from the global role and the society
// memberships. A developer bypasses all per-society approval checks.
func Evaluate(role domain.Role, memberships []domain.UserSociety) Decision {
	if role == domain.RoleDeveloper {
		return DecisionAllow
	}
	for _, m := range memberships {
		if m.ApprovalStatus == domain.ApprovalApproved {
			return DecisionAllow
		}
	}
	return DecisionPending
}

// IsSocietyAdmin reports whether the memberships grant admin rights over the
// given society. Only approved memberships count.
func IsSocietyAdmin(memberships []domain.UserSociety, societyID string) bool {
	for _, m := range memberships {
		if m.SocietyID == societyID &&
			m.Role == domain.RoleAdmin &&
			m.ApprovalStatus == domain.ApprovalApproved {
			return true
		}
	}
	return false
}

// CanManageUsers reports whether the user may open the user-administration
// pages. Developers always can; global admins can as well.
func CanManageUsers(user *domain.User) bool {
	if user == nil {
		return false
	}
	return user.GlobalRole == domain.RoleDeveloper || user.GlobalRole == domain.RoleAdmin
}
