package auth

// GuardDecision is the outcome of a route guard check: either render the
// page, or redirect elsewhere. Guards are synchronous and never touch the
// network.
type GuardDecision struct {
	Allow      bool
	RedirectTo string
}

// ProtectedGuard gates pages that require an authenticated session. Sessions
// without a full credential set are sent to the login page; authenticated
// users whose role is outside the (non-empty) allowed set are sent to their
// own dashboard instead. This table is the access-control surface of the
// application; any deviation is a security bug.
func ProtectedGuard(snap SessionSnapshot, allowedRoles ...UserRole) GuardDecision {
	if !snap.Authenticated() {
		return GuardDecision{RedirectTo: DestLogin}
	}

	if len(allowedRoles) > 0 && !roleAllowed(snap.User.Role, allowedRoles) {
		return GuardDecision{RedirectTo: DestinationFor(snap.User.Role)}
	}

	return GuardDecision{Allow: true}
}

// PublicGuard gates pages meant for signed-out visitors (login, signup,
// verification). A fully authenticated session is bounced to its dashboard;
// anything less renders normally.
func PublicGuard(snap SessionSnapshot) GuardDecision {
	if snap.Authenticated() {
		return GuardDecision{RedirectTo: DestinationFor(snap.User.Role)}
	}
	return GuardDecision{Allow: true}
}
