package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/pawprint/go-auth"
)

func TestErrorTaxonomyDiscrimination(t *testing.T) {
	checks := []struct {
		name    string
		matches func(error) bool
	}{
		{"validation", auth.IsValidationError},
		{"account unverified", auth.IsAccountUnverified},
		{"authentication failed", auth.IsAuthenticationFailed},
		{"otp", auth.IsOTPError},
		{"transport", auth.IsTransportError},
	}
	sentinels := []error{
		auth.ErrValidation,
		auth.ErrAccountUnverified,
		auth.ErrAuthenticationFailed,
		auth.ErrCodeRejected,
		auth.ErrTransport,
	}

	for i, check := range checks {
		for j, sentinel := range sentinels {
			got := check.matches(sentinel)
			if i == j {
				assert.True(t, got, "%s should match its own sentinel", check.name)
			} else {
				assert.False(t, got, "%s must not match %v", check.name, sentinel)
			}
		}
	}
}

func TestIsHelpersRejectForeignErrors(t *testing.T) {
	assert.False(t, auth.IsValidationError(nil))
	assert.False(t, auth.IsTransportError(errors.New("plain")))
	assert.False(t, auth.IsAccountUnverified(fmt.Errorf("wrapped: %w", errors.New("plain"))))
}

func TestIsHelpersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", auth.ErrTransport)
	assert.True(t, auth.IsTransportError(wrapped))

	wrapped = fmt.Errorf("login: %w", auth.ErrAccountUnverified)
	assert.True(t, auth.IsAccountUnverified(wrapped))
}

func TestUnverifiedContext(t *testing.T) {
	vctx, ok := auth.UnverifiedContext(auth.ErrAccountUnverified)
	require.True(t, ok)
	require.NotNil(t, vctx)
	assert.NotEmpty(t, vctx.Message)

	_, ok = auth.UnverifiedContext(auth.ErrAuthenticationFailed)
	assert.False(t, ok)

	_, ok = auth.UnverifiedContext(errors.New("plain"))
	assert.False(t, ok)

	_, ok = auth.UnverifiedContext(nil)
	assert.False(t, ok)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &auth.APIError{StatusCode: 401, Message: "invalid credentials"}
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Contains(t, err.Error(), "401")

	err = &auth.APIError{StatusCode: 500}
	assert.Contains(t, err.Error(), "500")
}
