package auth

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeValidation         = "VALIDATION_ERROR"
	textCodeAccountUnverified  = "ACCOUNT_UNVERIFIED"
	textCodeAuthFailed         = "AUTHENTICATION_FAILED"
	textCodeRegistrationFailed = "REGISTRATION_FAILED"
	textCodeOTP                = "OTP_ERROR"
	textCodeTransport          = "TRANSPORT_ERROR"
)

// Metadata keys used on rich errors.
const (
	metaEmailAddress = "emailAddress"
	metaUserID       = "userId"
	metaStatusCode   = "statusCode"
)

// ErrValidation is returned when a payload fails client-side validation;
// the remote operation is never invoked.
var ErrValidation = goerrors.New("invalid input", goerrors.CategoryValidation).
	WithTextCode(textCodeValidation).
	WithCode(goerrors.CodeBadRequest)

// ErrAccountUnverified is the login rejection for accounts that have not yet
// verified their email address. Its metadata carries the server-reported
// email address and user id; use UnverifiedContext to extract them.
var ErrAccountUnverified = goerrors.New("account pending email verification", goerrors.CategoryAuth).
	WithTextCode(textCodeAccountUnverified).
	WithCode(goerrors.CodeForbidden)

// ErrAuthenticationFailed is a terminal login rejection (bad credentials).
var ErrAuthenticationFailed = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode(textCodeAuthFailed).
	WithCode(goerrors.CodeUnauthorized)

// ErrCodeRejected covers send/verify code failures: expired code, mismatch,
// rate limited. The attempt is terminal; the user may retry via resend.
var ErrCodeRejected = goerrors.New("verification code rejected", goerrors.CategoryOperation).
	WithTextCode(textCodeOTP).
	WithCode(goerrors.CodeBadRequest)

// ErrTransport covers network level failures. No retry is attempted.
var ErrTransport = goerrors.New("auth service unreachable", goerrors.CategoryOperation).
	WithTextCode(textCodeTransport).
	WithCode(goerrors.CodeInternal)

// IsValidationError reports whether err is a client-side validation failure.
func IsValidationError(err error) bool { return hasTextCode(err, textCodeValidation) }

// IsAccountUnverified reports whether err is an unverified-account login
// rejection, the only recoverable login failure.
func IsAccountUnverified(err error) bool { return hasTextCode(err, textCodeAccountUnverified) }

// IsAuthenticationFailed reports whether err is a terminal login rejection.
func IsAuthenticationFailed(err error) bool { return hasTextCode(err, textCodeAuthFailed) }

// IsOTPError reports whether err is a code delivery or verification failure.
func IsOTPError(err error) bool { return hasTextCode(err, textCodeOTP) }

// IsTransportError reports whether err is a network/timeout failure.
func IsTransportError(err error) bool { return hasTextCode(err, textCodeTransport) }

func hasTextCode(err error, code string) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}

// UnverifiedContext extracts the VerificationContext carried by an
// unverified-account error. The email address and user id come from the
// error body the server returned, never from the login input.
func UnverifiedContext(err error) (*VerificationContext, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return nil, false
	}
	if rich.TextCode != textCodeAccountUnverified {
		return nil, false
	}

	vctx := &VerificationContext{Message: rich.Message}
	if email, ok := rich.Metadata[metaEmailAddress].(string); ok {
		vctx.EmailAddress = email
	}
	if userID, ok := rich.Metadata[metaUserID].(string); ok {
		vctx.UserID = userID
	}
	return vctx, true
}

func validationError(err error, message string) *goerrors.Error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(textCodeValidation).
		WithCode(goerrors.CodeBadRequest)
}

// classifyLoginError maps a raw APIClient login failure onto the error
// taxonomy. A 403 carrying the account identifiers in its body becomes
// ErrAccountUnverified with emailAddress/userId attached as metadata; a 403
// without them cannot feed the verification flow and is treated as a terminal
// rejection. Any other API rejection becomes ErrAuthenticationFailed with the
// server message; everything else is transport.
func classifyLoginError(err error) *goerrors.Error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return transportError(err)
	}

	if apiErr.StatusCode == http.StatusForbidden && hasAccountIdentifiers(apiErr.Data) {
		rich := cloneSentinel(ErrAccountUnverified, apiErr.Message)
		return rich.WithMetadata(map[string]any{
			metaStatusCode:   apiErr.StatusCode,
			metaEmailAddress: apiErr.Data.EmailAddress,
			metaUserID:       apiErr.Data.UserID,
		})
	}

	rich := cloneSentinel(ErrAuthenticationFailed, apiErr.Message)
	return rich.WithMetadata(map[string]any{metaStatusCode: apiErr.StatusCode})
}

// hasAccountIdentifiers reports whether the rejection body identifies the
// account well enough for SendVerificationCode to accept it.
func hasAccountIdentifiers(data *APIErrorData) bool {
	return data != nil && data.EmailAddress != "" && data.UserID != ""
}

func classifyRegisterError(err error) *goerrors.Error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return transportError(err)
	}

	message := apiErr.Message
	if message == "" {
		message = "registration failed"
	}

	return goerrors.Wrap(apiErr, goerrors.CategoryOperation, message).
		WithTextCode(textCodeRegistrationFailed).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{metaStatusCode: apiErr.StatusCode})
}

func classifyOTPError(err error) *goerrors.Error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return transportError(err)
	}

	rich := cloneSentinel(ErrCodeRejected, apiErr.Message)
	return rich.WithMetadata(map[string]any{metaStatusCode: apiErr.StatusCode})
}

func transportError(err error) *goerrors.Error {
	message := ErrTransport.Message
	if err != nil {
		message = err.Error()
	}
	rich := cloneSentinel(ErrTransport, message)
	return rich
}

// cloneSentinel derives a per-occurrence error from a package sentinel while
// keeping the sentinel in the Source chain so errors.Is keeps matching.
func cloneSentinel(sentinel *goerrors.Error, message string) *goerrors.Error {
	clone := sentinel.Clone()
	if clone == nil {
		return sentinel
	}
	if message != "" {
		clone.Message = message
	}
	clone.Source = sentinel
	return clone
}
