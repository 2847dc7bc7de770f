package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/pawprint/go-auth"
)

func anonymousSnap() auth.SessionSnapshot {
	return auth.SessionSnapshot{Status: auth.StatusAnonymous}
}

func pendingSnap() auth.SessionSnapshot {
	return auth.SessionSnapshot{Status: auth.StatusPendingVerification}
}

func authenticatedSnap(role auth.UserRole) auth.SessionSnapshot {
	return auth.SessionSnapshot{
		Status: auth.StatusAuthenticated,
		User:   &auth.User{ID: "u-1", EmailAddress: "a@b.com", Role: role},
		Token:  "token-1",
	}
}

// The full 3x2 decision table: three session states, two guard kinds.
func TestGuardDecisionTable(t *testing.T) {
	tests := []struct {
		name          string
		snap          auth.SessionSnapshot
		wantProtected auth.GuardDecision
		wantPublic    auth.GuardDecision
	}{
		{
			name:          "anonymous",
			snap:          anonymousSnap(),
			wantProtected: auth.GuardDecision{RedirectTo: auth.DestLogin},
			wantPublic:    auth.GuardDecision{Allow: true},
		},
		{
			name:          "pending verification",
			snap:          pendingSnap(),
			wantProtected: auth.GuardDecision{RedirectTo: auth.DestLogin},
			wantPublic:    auth.GuardDecision{Allow: true},
		},
		{
			name:          "authenticated",
			snap:          authenticatedSnap(auth.RolePetOwner),
			wantProtected: auth.GuardDecision{Allow: true},
			wantPublic:    auth.GuardDecision{RedirectTo: auth.DestPetOwnerDashboard},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantProtected, auth.ProtectedGuard(tc.snap))
			assert.Equal(t, tc.wantPublic, auth.PublicGuard(tc.snap))
		})
	}
}

func TestProtectedGuardDeniesWithoutToken(t *testing.T) {
	// Authenticated status without a token is not a valid credential set;
	// it must be treated exactly like a signed-out visitor.
	snap := authenticatedSnap(auth.RoleVet)
	snap.Token = ""

	decision := auth.ProtectedGuard(snap)
	assert.False(t, decision.Allow)
	assert.Equal(t, auth.DestLogin, decision.RedirectTo)
}

func TestProtectedGuardDeniesAnonymousForAnyRoleSet(t *testing.T) {
	roleSets := [][]auth.UserRole{
		nil,
		{auth.RolePetOwner},
		{auth.RoleVet, auth.RoleSuperAdmin},
		{auth.RolePetOwner, auth.RoleVet, auth.RoleSuperAdmin},
	}

	for _, roles := range roleSets {
		decision := auth.ProtectedGuard(anonymousSnap(), roles...)
		require.False(t, decision.Allow)
		assert.Equal(t, auth.DestLogin, decision.RedirectTo)
	}
}

func TestProtectedGuardRedirectsExcludedRoleToOwnDashboard(t *testing.T) {
	decision := auth.ProtectedGuard(authenticatedSnap(auth.RolePetOwner), auth.RoleVet)
	assert.False(t, decision.Allow)
	assert.Equal(t, auth.DestPetOwnerDashboard, decision.RedirectTo)

	decision = auth.ProtectedGuard(authenticatedSnap(auth.RoleSuperAdmin), auth.RolePetOwner, auth.RoleVet)
	assert.False(t, decision.Allow)
	assert.Equal(t, auth.DestSuperAdminDashboard, decision.RedirectTo)
}

func TestProtectedGuardAllowsMatchingRole(t *testing.T) {
	decision := auth.ProtectedGuard(authenticatedSnap(auth.RoleVet), auth.RoleVet)
	assert.True(t, decision.Allow)
	assert.Empty(t, decision.RedirectTo)
}

func TestPublicGuardBouncesAuthenticatedSuperAdmin(t *testing.T) {
	decision := auth.PublicGuard(authenticatedSnap(auth.RoleSuperAdmin))
	assert.False(t, decision.Allow)
	assert.Equal(t, auth.DestSuperAdminDashboard, decision.RedirectTo)
}

func TestPublicGuardAllowsPartialCredentials(t *testing.T) {
	// Missing token or user means the session is not fully authenticated;
	// public screens render.
	snap := authenticatedSnap(auth.RoleVet)
	snap.User = nil
	assert.True(t, auth.PublicGuard(snap).Allow)

	snap = authenticatedSnap(auth.RoleVet)
	snap.Token = ""
	assert.True(t, auth.PublicGuard(snap).Allow)
}
