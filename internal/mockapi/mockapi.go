// Package mockapi is a deterministic stand-in for the society REST backend.
// Tests mount it on an httptest.Server so the session service, route guard,
// and pages can be exercised without a live backend; cmd/mockapi serves it
// standalone for local development.
//
// Handlers branch on the sentinel fixtures in fixtures.go, and the small
// amount of mutable state (societies, memberships, signups) lives in memory
// so an approval is visible on the next fetch. Routing ignores the Host
// header, so a primary and an alternate base URL both reach the same state.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/societyhub/dashboard/internal/core/domain"
)

type mockUser struct {
	domain.User
	Password string
}

// Server holds the canned state behind the mock handlers.
type Server struct {
	// AccessTTL is the lifetime of minted access tokens. Tests shrink it
	// (or make it negative) to exercise expiry and refresh paths.
	AccessTTL time.Duration

	mu            sync.Mutex
	secret        []byte
	users         map[string]*mockUser // keyed by user ID
	societies     map[string]*domain.Society
	refreshTokens map[string]string // refresh token -> user ID
	resetTokens   map[string]string // reset token -> user ID
	mux           *http.ServeMux
}

// New returns a seeded mock backend.
func New() *Server {
	s := &Server{
		AccessTTL:     30 * time.Minute,
		secret:        []byte("mockapi-signing-secret"),
		users:         make(map[string]*mockUser),
		societies:     make(map[string]*domain.Society),
		refreshTokens: make(map[string]string),
		resetTokens:   make(map[string]string),
	}
	s.seed()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/v1/auth/logout", s.handleLogout)
	mux.HandleFunc("POST /api/v1/auth/forgot-password", s.handleForgotPassword)
	mux.HandleFunc("POST /api/v1/auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("POST /api/v1/auth/change-password", s.handleChangePassword)
	mux.HandleFunc("GET /api/v1/users/me", s.handleMe)
	mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	mux.HandleFunc("PUT /api/v1/users/{id}", s.handleUpdateUser)
	mux.HandleFunc("GET /api/v1/societies", s.handleListSocieties)
	mux.HandleFunc("GET /api/v1/societies/public", s.handlePublicSocieties)
	mux.HandleFunc("GET /api/v1/societies/{id}", s.handleGetSociety)
	mux.HandleFunc("POST /api/v1/societies", s.handleCreateSociety)
	mux.HandleFunc("POST /api/v1/societies/{id}/approve-society", s.handleApproveSociety)
	mux.HandleFunc("GET /api/v1/societies/{id}/members", s.handleSocietyMembers)
	mux.HandleFunc("POST /api/v1/societies/{id}/approve", s.handleApproveMembership)
	s.mux = mux
	return s
}

// Handler returns the root handler for mounting on an httptest.Server.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) mintAccessToken(userID string) string {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed
}

// callerLocked resolves the bearer token to a seeded user. Callers must hold
// s.mu.
func (s *Server) callerLocked(r *http.Request) *mockUser {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	return s.users[claims.Subject]
}

func (s *Server) userByEmailLocked(email string) *mockUser {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// --- auth handlers ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.userByEmailLocked(req.Email)
	if user == nil || user.Password != req.Password {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsActive {
		writeDetail(w, http.StatusForbidden, "User account is disabled")
		return
	}

	refresh := uuid.NewString()
	s.refreshTokens[refresh] = user.ID

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  s.mintAccessToken(user.ID),
		"refresh_token": refresh,
		"token_type":    "bearer",
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		FullName  string `json:"full_name"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
		SocietyID string `json:"society_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, req.Email) || u.Phone == req.Phone {
			writeDetail(w, http.StatusBadRequest, "User with this email or phone already exists")
			return
		}
	}

	now := time.Now().UTC()
	user := &mockUser{
		User: domain.User{
			ID:         "usr_" + uuid.NewString()[:8],
			Email:      req.Email,
			FullName:   req.FullName,
			Phone:      req.Phone,
			GlobalRole: domain.RoleMember,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		Password: req.Password,
	}

	if req.SocietyID != "" {
		membership := domain.UserSociety{
			ID:             "mem_" + uuid.NewString()[:8],
			UserID:         user.ID,
			SocietyID:      req.SocietyID,
			Role:           domain.RoleMember,
			ApprovalStatus: domain.ApprovalPending,
			JoinedAt:       now,
		}
		if soc, ok := s.societies[req.SocietyID]; ok {
			membership.Society = &domain.SocietySummary{ID: soc.ID, Name: soc.Name, Address: soc.Address, City: soc.City}
		}
		user.UserSocieties = append(user.UserSocieties, membership)
	}

	s.users[user.ID] = user
	writeJSON(w, http.StatusCreated, user.User)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refreshTokens[req.RefreshToken]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": s.mintAccessToken(userID),
		"token_type":   "bearer",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.callerLocked(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	// Never reveals whether the email exists, like the real backend.
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If account exists, password reset link has been sent",
	})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.resetTokens[req.Token]
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	s.users[userID].Password = req.NewPassword
	delete(s.resetTokens, req.Token)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.callerLocked(r)
	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if user.Password != req.CurrentPassword {
		writeDetail(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	user.Password = req.NewPassword
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// --- user handlers ---

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.callerLocked(r)
	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJSON(w, http.StatusOK, user.User)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.callerLocked(r)
	if caller == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if caller.GlobalRole != domain.RoleDeveloper && caller.GlobalRole != domain.RoleAdmin {
		writeDetail(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.User)
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		FullName *string `json:"full_name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.callerLocked(r)
	if caller == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	user, ok := s.users[r.PathValue("id")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "User not found")
		return
	}

	if req.Email != nil {
		for _, other := range s.users {
			if other.ID != user.ID && strings.EqualFold(other.Email, *req.Email) {
				writeDetail(w, http.StatusBadRequest, "Email already registered")
				return
			}
		}
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	writeJSON(w, http.StatusOK, user.User)
}

// --- society handlers ---

func (s *Server) handleListSocieties(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.callerLocked(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	status := domain.ApprovalStatus(r.URL.Query().Get("approval_status"))
	societies := make([]domain.Society, 0, len(s.societies))
	for _, soc := range s.societies {
		if status != "" && soc.ApprovalStatus != status {
			continue
		}
		societies = append(societies, *soc)
	}
	writeJSON(w, http.StatusOK, societies)
}

func (s *Server) handlePublicSocieties(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	societies := make([]domain.Society, 0, len(s.societies))
	for _, soc := range s.societies {
		if soc.ApprovalStatus == domain.ApprovalApproved {
			societies = append(societies, *soc)
		}
	}
	writeJSON(w, http.StatusOK, societies)
}

func (s *Server) handleGetSociety(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.callerLocked(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	society, ok := s.societies[r.PathValue("id")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Society not found")
		return
	}
	writeJSON(w, http.StatusOK, society)
}

func (s *Server) handleCreateSociety(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string `json:"name"`
		Address       string `json:"address"`
		City          string `json:"city"`
		State         string `json:"state"`
		Pincode       string `json:"pincode"`
		ContactPerson string `json:"contact_person"`
		ContactEmail  string `json:"contact_email"`
		ContactPhone  string `json:"contact_phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.callerLocked(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if req.Name == "" || req.Address == "" {
		writeDetail(w, http.StatusBadRequest, "name and address are required")
		return
	}

	now := time.Now().UTC()
	society := &domain.Society{
		ID:             "soc_" + uuid.NewString()[:8],
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Pincode:        req.Pincode,
		ContactPerson:  req.ContactPerson,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.societies[society.ID] = society
	writeJSON(w, http.StatusCreated, society)
}

func (s *Server) handleApproveSociety(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approved        bool   `json:"approved"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.callerLocked(r)
	if caller == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	if caller.GlobalRole != domain.RoleDeveloper {
		writeDetail(w, http.StatusForbidden, "Only developers can approve societies")
		return
	}

	society, ok := s.societies[r.PathValue("id")]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Society not found")
		return
	}

	now := time.Now().UTC()
	if req.Approved {
		society.ApprovalStatus = domain.ApprovalApproved
		society.ApprovedBy = caller.ID
		society.ApprovedAt = &now
	} else {
		society.ApprovalStatus = domain.ApprovalRejected
	}
	society.UpdatedAt = now
	writeJSON(w, http.StatusOK, society)
}

func (s *Server) handleSocietyMembers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.callerLocked(r) == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	societyID := r.PathValue("id")
	status := domain.ApprovalStatus(r.URL.Query().Get("approval_status"))

	members := make([]domain.SocietyMember, 0)
	for _, u := range s.users {
		for _, m := range u.UserSocieties {
			if m.SocietyID != societyID {
				continue
			}
			if status != "" && m.ApprovalStatus != status {
				continue
			}
			profile := u.User
			members = append(members, domain.SocietyMember{UserSociety: m, User: &profile})
		}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) handleApproveMembership(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserSocietyID   string `json:"user_society_id"`
		Approved        bool   `json:"approved"`
		RejectionReason string `json:"rejection_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.callerLocked(r)
	if caller == nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	societyID := r.PathValue("id")
	for _, u := range s.users {
		for i := range u.UserSocieties {
			m := &u.UserSocieties[i]
			if m.ID != req.UserSocietyID || m.SocietyID != societyID {
				continue
			}
			if m.ApprovalStatus != domain.ApprovalPending {
				writeDetail(w, http.StatusBadRequest, "Membership is already "+string(m.ApprovalStatus))
				return
			}
			if req.Approved {
				m.ApprovalStatus = domain.ApprovalApproved
			} else {
				m.ApprovalStatus = domain.ApprovalRejected
			}
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Membership request not found")
}
