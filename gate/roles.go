package gate

// Role is the page-level access axis. Roles are declared per route as a
// static allow-list; they are never derived from permissions.
type Role string

const (
	RoleStudent    Role = "student"
	RoleTeacher    Role = "teacher"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// ManagementRoles is the usual allow-list for administrative screens.
var ManagementRoles = []Role{RoleAdmin, RoleSuperAdmin}

// AllRoles allows every authenticated role through.
var AllRoles = []Role{RoleStudent, RoleTeacher, RoleAdmin, RoleSuperAdmin}

// RoleAllowed reports whether role appears in the allow-list.
// An empty allow-list denies everyone; an empty role never matches.
func RoleAllowed(role Role, allow []Role) bool {
	if role == "" {
		return false
	}
	for _, a := range allow {
		if a == role {
			return true
		}
	}
	return false
}
