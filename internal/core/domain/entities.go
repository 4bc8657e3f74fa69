package domain

// Role represents user role in the system
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleEmployee      Role = "EMPLOYEE"
	RoleClient        Role = "CLIENT"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleEmployee || r == RoleClient
}

// Actor is the identity resolved from a session token. Every privileged
// operation receives one.
type Actor struct {
	ID       uint
	Username string
	Role     Role
}
