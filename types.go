package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// APIClient is the remote auth API consumed by the controller. Implementations
// must honor context cancellation and must not retry on their own.
type APIClient interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	SendVerificationCode(ctx context.Context, input SendCodeInput) (*SendCodeResult, error)
	VerifyCode(ctx context.Context, input VerifyCodeInput) (*VerifyCodeResult, error)
}

// CredentialStore persists the single {token, user} record between runs.
// Save is called on login success, Clear on logout, Load once at startup.
type CredentialStore interface {
	Save(ctx context.Context, record PersistedSession) error
	Load(ctx context.Context) (*PersistedSession, error)
	Clear(ctx context.Context) error
}

type noopCredentialStore struct{}

func (noopCredentialStore) Save(context.Context, PersistedSession) error { return nil }

func (noopCredentialStore) Load(context.Context) (*PersistedSession, error) { return nil, nil }

func (noopCredentialStore) Clear(context.Context) error { return nil }

func normalizeCredentialStore(s CredentialStore) CredentialStore {
	if s == nil {
		return noopCredentialStore{}
	}
	return s
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
