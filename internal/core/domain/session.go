package domain

import "time"

// Theme keys persisted on the session alongside the token pair.
const (
	ThemeDefault = "emerald"
)

// Session is the server-held record of one browser's login. The token pair
// is the single source of truth for "is a session present"; everything else
// is reconstructed from it on demand.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"created_at"`
}

// Authenticated reports whether the session carries a token pair.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}
