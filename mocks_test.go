package auth_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	auth "github.com/pawprint/go-auth"
)

// MockAPIClient implements auth.APIClient
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) Register(ctx context.Context, input auth.RegisterInput) (*auth.RegisterResult, error) {
	args := m.Called(ctx, input)
	if res, ok := args.Get(0).(*auth.RegisterResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPIClient) Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error) {
	args := m.Called(ctx, input)
	if res, ok := args.Get(0).(*auth.LoginResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPIClient) SendVerificationCode(ctx context.Context, input auth.SendCodeInput) (*auth.SendCodeResult, error) {
	args := m.Called(ctx, input)
	if res, ok := args.Get(0).(*auth.SendCodeResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAPIClient) VerifyCode(ctx context.Context, input auth.VerifyCodeInput) (*auth.VerifyCodeResult, error) {
	args := m.Called(ctx, input)
	if res, ok := args.Get(0).(*auth.VerifyCodeResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCredentialStore implements auth.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Save(ctx context.Context, record auth.PersistedSession) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCredentialStore) Load(ctx context.Context) (*auth.PersistedSession, error) {
	args := m.Called(ctx)
	if res, ok := args.Get(0).(*auth.PersistedSession); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// memCredentialStore is a map-backed CredentialStore for round-trip tests.
type memCredentialStore struct {
	mu     sync.Mutex
	record *auth.PersistedSession
}

func (s *memCredentialStore) Save(_ context.Context, record auth.PersistedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = &record
	return nil
}

func (s *memCredentialStore) Load(context.Context) (*auth.PersistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return nil, nil
	}
	record := *s.record
	return &record, nil
}

func (s *memCredentialStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}

// capturingSink records activity events in order.
type capturingSink struct {
	mu     sync.Mutex
	events []auth.ActivityEvent
}

func (c *capturingSink) Record(_ context.Context, evt auth.ActivityEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return nil
}

func (c *capturingSink) types() []auth.ActivityEventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]auth.ActivityEventType, 0, len(c.events))
	for _, evt := range c.events {
		out = append(out, evt.EventType)
	}
	return out
}

// gatedAPIClient blocks each login until released, so tests can interleave
// two in-flight logins deterministically.
type gatedAPIClient struct {
	gates   chan chan struct{}
	results func(input auth.LoginInput) (*auth.LoginResult, error)
}

func newGatedAPIClient(results func(input auth.LoginInput) (*auth.LoginResult, error)) *gatedAPIClient {
	return &gatedAPIClient{
		gates:   make(chan chan struct{}, 8),
		results: results,
	}
}

// release unblocks the oldest in-flight login.
func (g *gatedAPIClient) release() {
	gate := <-g.gates
	close(gate)
}

func (g *gatedAPIClient) Login(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error) {
	gate := make(chan struct{})
	g.gates <- gate
	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.results(input)
}

func (g *gatedAPIClient) Register(context.Context, auth.RegisterInput) (*auth.RegisterResult, error) {
	return &auth.RegisterResult{}, nil
}

func (g *gatedAPIClient) SendVerificationCode(context.Context, auth.SendCodeInput) (*auth.SendCodeResult, error) {
	return &auth.SendCodeResult{}, nil
}

func (g *gatedAPIClient) VerifyCode(context.Context, auth.VerifyCodeInput) (*auth.VerifyCodeResult, error) {
	return &auth.VerifyCodeResult{}, nil
}

func petOwner() auth.User {
	return auth.User{
		ID:            "u-100",
		FirstName:     "Dana",
		LastName:      "Reyes",
		EmailAddress:  "dana@example.com",
		Role:          auth.RolePetOwner,
		EmailVerified: true,
		Activated:     true,
	}
}

func vet() auth.User {
	return auth.User{
		ID:            "u-200",
		FirstName:     "Iris",
		LastName:      "Chen",
		EmailAddress:  "iris@example.com",
		Role:          auth.RoleVet,
		EmailVerified: true,
		Activated:     true,
	}
}
