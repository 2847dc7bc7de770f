package auth

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// maxOTPLength is the longest code the verify endpoint accepts.
const maxOTPLength = 6

// RegisterPayload is the signup form payload. Password confirmation is
// checked here, before any network call is made.
type RegisterPayload struct {
	FirstName       string   `form:"first_name" json:"firstName"`
	LastName        string   `form:"last_name" json:"lastName"`
	EmailAddress    string   `form:"email" json:"emailAddress"`
	Password        string   `form:"password" json:"password"`
	ConfirmPassword string   `form:"confirm_password" json:"confirmPassword"`
	Gender          string   `form:"gender" json:"gender"`
	Role            UserRole `form:"role" json:"role"`
}

// Validate will run validation rules
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.EmailAddress, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
		validation.Field(&r.Role, validation.Required, validation.In(RolePetOwner, RoleVet)),
	)
}

// LoginPayload is the login form payload.
type LoginPayload struct {
	EmailAddress string `form:"email" json:"emailAddress"`
	Password     string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmailAddress, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// SendCodePayload asks for a one-time code. It is built from a
// VerificationContext, never from user input.
type SendCodePayload struct {
	EmailAddress string `json:"emailAddress"`
	UserID       string `json:"userId"`
}

// Validate will run validation rules
func (r SendCodePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmailAddress, validation.Required, is.Email),
		validation.Field(&r.UserID, validation.Required),
	)
}

// VerifyCodePayload submits the one-time code the user typed. The code is
// normalized with NormalizeOTP before validation, so non-digit characters
// are stripped rather than rejected.
type VerifyCodePayload struct {
	EmailAddress string `form:"email" json:"emailAddress"`
	OTPCode      string `form:"otp_code" json:"otpCode"`
}

// Validate will run validation rules
func (r VerifyCodePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmailAddress, validation.Required, is.Email),
		validation.Field(
			&r.OTPCode,
			validation.Required,
			validation.Length(1, maxOTPLength),
			is.Digit,
		),
	)
}

// NormalizeOTP strips every non-digit character and truncates the result to
// the accepted code length. "12-34-56" and "123456" submit the same code.
func NormalizeOTP(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == maxOTPLength {
			break
		}
	}
	return b.String()
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}
