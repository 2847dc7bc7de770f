package auth

// Named destinations owned by the router collaborator. The controller only
// ever returns these; it never navigates.
const (
	DestHome                = "/"
	DestLogin               = "/login"
	DestSignup              = "/signup"
	DestVerifyCode          = "/verify-otp"
	DestPetOwnerDashboard   = "/pet-owner/dashboard"
	DestVetDashboard        = "/vet/dashboard"
	DestSuperAdminDashboard = "/super-admin/dashboard"
)

// DestinationFor maps a role to its default landing page. This is the single
// source of truth shared by login-success routing, both route guards, and the
// logged-in navigation chrome.
func DestinationFor(role UserRole) string {
	switch role {
	case RolePetOwner:
		return DestPetOwnerDashboard
	case RoleVet:
		return DestVetDashboard
	case RoleSuperAdmin:
		return DestSuperAdminDashboard
	default:
		return DestHome
	}
}

// Navigation is a navigation instruction returned by an operation: "go to
// Destination carrying Context". It is a value, not an imperative call; the
// calling layer owns the actual transition.
type Navigation struct {
	Destination string
	Context     *VerificationContext
}
