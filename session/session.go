// Package session persists the signed-in user: an opaque API token plus the user
// snapshot returned at login, kept side by side in browser storage.
//
// The two values are only meaningful together. A read that finds one without the
// other, or finds a snapshot that does not decode, purges both.
package session

import (
	"github.com/jrsteele09/bursary-portal/users"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

// Session is either fully present or fully absent.
type Session struct {
	Token string
	User  *users.Snapshot
}

// Present reports whether the session holds a token and a user.
func (s Session) Present() bool {
	return s.Token != "" && s.User != nil
}
