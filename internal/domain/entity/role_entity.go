package entity

// Built-in role names
const (
	RoleAdmin   = "admin"
	RoleEndUser = "end-user"
)

// Role represents an authorization role
// Many-to-many with User via roles_users
type Role struct {
	ID          int64
	Name        string
	Description string
}
