package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	errs "lapor/internal/errors"
	"lapor/internal/model"
)

// UserSource is the read side of the users snapshot.
type UserSource interface {
	Users() []model.User
}

// Gate validates credentials against the loaded users snapshot and
// holds the process session. Credentials are bcrypt hashes; the
// original prototype's plain-text comparison is deliberately not
// carried over.
type Gate struct {
	source UserSource

	mu      sync.RWMutex
	session model.Session
}

// NewGate creates a gate over the given user source.
func NewGate(source UserSource) *Gate {
	return &Gate{source: source}
}

// Login finds a user whose PJLP number, role and (when supplied)
// password all match, succeeding only for active accounts. A missing
// user is a credential failure, never an internal error.
func (g *Gate) Login(pjlpNumber string, role model.Role, password string) (*model.User, error) {
	for _, u := range g.source.Users() {
		if u.PJLPNumber != pjlpNumber || u.Role != role {
			continue
		}
		if password != "" {
			if u.PasswordHash == "" {
				return nil, errs.ErrInvalidCredentials
			}
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return nil, errs.ErrInvalidCredentials
			}
		}
		if !u.IsActive {
			return nil, errs.ErrUserInactive
		}
		user := u
		g.mu.Lock()
		g.session = model.Session{User: &user, Authenticated: true}
		g.mu.Unlock()
		return &user, nil
	}
	return nil, errs.ErrInvalidCredentials
}

// Logout clears the session.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.session = model.Session{}
	g.mu.Unlock()
}

// Session returns the current session state.
func (g *Gate) Session() model.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// RefreshSession re-reads the session user from the snapshot so a
// self-service profile edit is reflected immediately.
func (g *Gate) RefreshSession() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session.User == nil {
		return
	}
	for _, u := range g.source.Users() {
		if u.ID == g.session.User.ID {
			user := u
			g.session.User = &user
			return
		}
	}
	// Session user no longer exists (hard-deleted elsewhere).
	g.session = model.Session{}
}
