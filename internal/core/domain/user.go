package domain

import "regexp"

// User models a registered account. PasswordHash is always the output of the
// credential hasher; plaintext never reaches this struct.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// Viewer identifies who is looking at a profile. A nil *Viewer means an
// anonymous request.
type Viewer struct {
	ID   int
	Role Role
}

// Profile is the viewer-dependent projection of a User. Email is only
// populated for the user themself and for admins.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
}

// IsSearchableBy reports whether the user shows up in search results for the
// given viewer. Accounts that never earned a role stay invisible to the
// public, but remain visible to admins and to themselves.
func (u *User) IsSearchableBy(viewer *Viewer) bool {
	if u.Role != RoleNone {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.Role == RoleAdmin || viewer.ID == u.ID
}

// ProfileFor returns the profile as seen from the given viewer. The owner and
// admins get the full profile, everyone else the public subset.
func (u *User) ProfileFor(viewer *Viewer) Profile {
	p := Profile{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
	if viewer != nil && (viewer.ID == u.ID || viewer.Role == RoleAdmin) {
		p.Email = u.Email
	}
	return p
}

// emailPattern is the permissive email-shape test shared by registration
// validation and login classification. A login string matching it is treated
// as an email, so usernames are not allowed to match it either.
var emailPattern = regexp.MustCompile(
	`^([a-z0-9_+]([a-z0-9_+.]*[a-z0-9_+])?)@([a-z0-9]+([\-\.][a-z0-9]+)*\.[a-z]{2,6})`,
)

// LooksLikeEmail reports whether s passes the email-shape test.
func LooksLikeEmail(s string) bool {
	return emailPattern.MatchString(s)
}
