// Package auth exposes the authentication gateway the handlers consult
// before touching the event log. Real authentication lives outside
// this system; the core only needs to know who, if anyone, is acting.
package auth

import "github.com/bankfold-dev/bankfold/internal/model"

// Gateway reports the currently connected user. The second return is
// false when nobody is authenticated; every handler maps that case to
// NON_AUTHENTICATED_USER.
type Gateway interface {
	ConnectedUser() (model.User, bool)
}

// Fixed always reports the same user — the single-user local setup.
type Fixed struct {
	User model.User
}

// ConnectedUser returns the configured user.
func (f Fixed) ConnectedUser() (model.User, bool) { return f.User, true }

// Anonymous never reports a user.
type Anonymous struct{}

// ConnectedUser reports that nobody is authenticated.
func (Anonymous) ConnectedUser() (model.User, bool) { return model.User{}, false }
