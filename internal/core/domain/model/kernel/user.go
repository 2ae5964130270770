package kernel

import "strings"

// User is the acting user identity passed into permission checks.
// It carries the authenticated email address and the user's group
// memberships as reported by the authentication collaborator.
//
// User is a read-only snapshot; the core never mutates or persists it.
type User struct {
	email  Email
	groups []string
}

// NewUser creates a User from a validated email and its group memberships.
// Group names are trimmed and lowercased so membership checks are
// case-insensitive, mirroring email sanitisation.
func NewUser(email Email, groups []string) (User, error) {
	if err := email.Validate(); err != nil {
		return User{}, err
	}

	sanitised := make([]string, 0, len(groups))
	for _, g := range groups {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			sanitised = append(sanitised, g)
		}
	}

	return User{email: email, groups: sanitised}, nil
}

// Email returns the user's email address.
func (u User) Email() Email {
	return u.email
}

// Groups returns the user's sanitised group memberships.
func (u User) Groups() []string {
	return u.groups
}

// InGroup reports whether the user belongs to the named group.
// The comparison is case-insensitive.
func (u User) InGroup(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, g := range u.groups {
		if g == name {
			return true
		}
	}
	return false
}

// Validate checks that the User was properly constructed.
func (u User) Validate() error {
	return u.email.Validate()
}
