package ports

import (
	"context"

	"github.com/societyhub/dashboard/internal/core/domain"
)

// CommunityService exposes the society and user directory operations the
// dashboard pages need. Calls run under the given session's credentials,
// with the session service's single-refresh-then-retry behavior on 401.
type CommunityService interface {
	Societies(ctx context.Context, session *domain.Session, status domain.ApprovalStatus) ([]domain.Society, error)
	GetSociety(ctx context.Context, session *domain.Session, societyID string) (*domain.Society, error)
	CreateSociety(ctx context.Context, session *domain.Session, in SocietyInput) (*domain.Society, error)
	ApproveSociety(ctx context.Context, session *domain.Session, societyID string, approved bool, reason string) (*domain.Society, error)
	Members(ctx context.Context, session *domain.Session, societyID string, status domain.ApprovalStatus) ([]domain.SocietyMember, error)
	DecideMembership(ctx context.Context, session *domain.Session, societyID string, decision MembershipDecision) (*domain.UserSociety, error)
	Users(ctx context.Context, session *domain.Session) ([]domain.User, error)
	UpdateUser(ctx context.Context, session *domain.Session, userID string, in UserUpdateInput) (*domain.User, error)
}
