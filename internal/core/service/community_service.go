package service

import (
	"context"

	"github.com/societyhub/dashboard/internal/core/domain"
	"github.com/societyhub/dashboard/internal/core/ports"
)

// CommunityService implements ports.CommunityService on top of the upstream
// client, delegating credential handling to the session service.
type CommunityService struct {
	api      ports.SocietyAPI
	sessions *SessionService
}

var _ ports.CommunityService = (*CommunityService)(nil)

func NewCommunityService(api ports.SocietyAPI, sessions *SessionService) *CommunityService {
	return &CommunityService{api: api, sessions: sessions}
}

func (s *CommunityService) Societies(ctx context.Context, session *domain.Session, status domain.ApprovalStatus) ([]domain.Society, error) {
	var societies []domain.Society
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		list, err := s.api.ListSocieties(ctx, token, status)
		if err != nil {
			return err
		}
		societies = list
		return nil
	})
	return societies, err
}

func (s *CommunityService) GetSociety(ctx context.Context, session *domain.Session, societyID string) (*domain.Society, error) {
	var society *domain.Society
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		found, err := s.api.GetSociety(ctx, token, societyID)
		if err != nil {
			return err
		}
		society = found
		return nil
	})
	return society, err
}

func (s *CommunityService) CreateSociety(ctx context.Context, session *domain.Session, in ports.SocietyInput) (*domain.Society, error) {
	var society *domain.Society
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		created, err := s.api.CreateSociety(ctx, token, in)
		if err != nil {
			return err
		}
		society = created
		return nil
	})
	return society, err
}

func (s *CommunityService) ApproveSociety(ctx context.Context, session *domain.Session, societyID string, approved bool, reason string) (*domain.Society, error) {
	var society *domain.Society
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		updated, err := s.api.ApproveSociety(ctx, token, societyID, approved, reason)
		if err != nil {
			return err
		}
		society = updated
		return nil
	})
	return society, err
}

func (s *CommunityService) Members(ctx context.Context, session *domain.Session, societyID string, status domain.ApprovalStatus) ([]domain.SocietyMember, error) {
	var members []domain.SocietyMember
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		list, err := s.api.SocietyMembers(ctx, token, societyID, status)
		if err != nil {
			return err
		}
		members = list
		return nil
	})
	return members, err
}

func (s *CommunityService) DecideMembership(ctx context.Context, session *domain.Session, societyID string, decision ports.MembershipDecision) (*domain.UserSociety, error) {
	var membership *domain.UserSociety
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		updated, err := s.api.ApproveMembership(ctx, token, societyID, decision)
		if err != nil {
			return err
		}
		membership = updated
		return nil
	})
	return membership, err
}

func (s *CommunityService) Users(ctx context.Context, session *domain.Session) ([]domain.User, error) {
	var users []domain.User
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		list, err := s.api.ListUsers(ctx, token)
		if err != nil {
			return err
		}
		users = list
		return nil
	})
	return users, err
}

func (s *CommunityService) UpdateUser(ctx context.Context, session *domain.Session, userID string, in ports.UserUpdateInput) (*domain.User, error) {
	var user *domain.User
	err := s.sessions.WithAuth(ctx, session, func(token string) error {
		updated, err := s.api.UpdateUser(ctx, token, userID, in)
		if err != nil {
			return err
		}
		user = updated
		return nil
	})
	return user, err
}
