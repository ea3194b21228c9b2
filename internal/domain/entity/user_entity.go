package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in Password field
//
// FirstName and PhoneNumber are optional; the seeded default accounts have neither.
type User struct {
	ID          int64
	FirstName   string
	PhoneNumber string
	Email       string
	Password    string
	Active      bool
	ConfirmedAt *time.Time
	Roles       []Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles in load order.
func (u *User) RoleNames() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.Name)
	}
	return out
}
