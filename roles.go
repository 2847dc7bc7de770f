package auth

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RolePetOwner, RoleVet, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// SelfRegisterRoles returns the roles an account may register itself with.
// SUPER_ADMIN accounts are provisioned out of band and never self-register.
func SelfRegisterRoles() []UserRole {
	return []UserRole{
		RolePetOwner,
		RoleVet,
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{
		RolePetOwner,
		RoleVet,
		RoleSuperAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}

func roleAllowed(role UserRole, allowed []UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
