package auth

// UserRole is the user's role as reported by the auth API
type UserRole = string

const (
	// RolePetOwner is a pet owner account
	RolePetOwner UserRole = "PET_OWNER"
	// RoleVet is a veterinarian account
	RoleVet UserRole = "VET"
	// RoleSuperAdmin is a back-office administrator account
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// SessionStatus is the coarse authentication state of the client session.
type SessionStatus string

const (
	// StatusAnonymous means no credential is held
	StatusAnonymous SessionStatus = "anonymous"
	// StatusPendingVerification means the account exists but its email
	// address has not been verified; the session never carries a token in
	// this state.
	StatusPendingVerification SessionStatus = "pending_verification"
	// StatusAuthenticated means a token and user profile are held
	StatusAuthenticated SessionStatus = "authenticated"
)

// User is the minimal profile the auth API returns on login.
type User struct {
	ID            string   `json:"id,omitempty"`
	FirstName     string   `json:"firstName,omitempty"`
	LastName      string   `json:"lastName,omitempty"`
	EmailAddress  string   `json:"emailAddress,omitempty"`
	Role          UserRole `json:"role,omitempty"`
	EmailVerified bool     `json:"isEmailVerified,omitempty"`
	Activated     bool     `json:"isActivated,omitempty"`
}

// FullName joins first and last name for display purposes.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// VerificationContext is the ephemeral payload carried between screens while
// an account awaits email verification. It is produced by registration or by
// a login rejected with an unverified-account error, and consumed by the
// verification screen to auto-trigger code delivery. The email address and
// user id originate from the server, which is the source of truth for the
// association.
type VerificationContext struct {
	EmailAddress string `json:"emailAddress,omitempty"`
	UserID       string `json:"userId,omitempty"`
	Message      string `json:"message,omitempty"`
}

// PersistedSession is the single durable record written on successful login
// and removed on logout, so the session survives an application restart.
type PersistedSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
