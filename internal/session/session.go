package session

import (
	"time"

	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// Session is the decoded current credential. Methods are safe on a nil
// *Session, which behaves as "nobody".
type Session struct {
	Token    string
	Account  models.Account
	IssuedAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Account.Role == models.RoleAdmin
}

// SubjectID is the account id the session belongs to.
func (s *Session) SubjectID() string {
	if s == nil {
		return ""
	}
	return s.Account.ID
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
