package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auth "github.com/pawprint/go-auth"
)

type logCall struct {
	level   string
	message string
	args    []any
}

// captureLogger records logger calls for assertions.
type captureLogger struct {
	calls []logCall
}

func (l *captureLogger) record(level, message string, args ...any) {
	l.calls = append(l.calls, logCall{level: level, message: message, args: args})
}

func (l *captureLogger) Debug(format string, args ...any) { l.record("debug", format, args...) }
func (l *captureLogger) Info(format string, args ...any)  { l.record("info", format, args...) }
func (l *captureLogger) Warn(format string, args ...any)  { l.record("warn", format, args...) }
func (l *captureLogger) Error(format string, args ...any) { l.record("error", format, args...) }

// The glog logger is the intended production logger; its loggers must plug
// straight into WithLogger without an adapter.
func TestGlogLoggerSatisfiesContract(t *testing.T) {
	base := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("auth-test"),
		glog.WithAddSource(false),
	)
	require.NotNil(t, base)

	var logger auth.Logger = base.GetLogger("auth")
	require.NotNil(t, logger)

	api := &MockAPIClient{}
	api.On("Login", mock.Anything, mock.Anything).
		Return(&auth.LoginResult{User: petOwner(), Token: "token-1"}, nil)

	controller := auth.NewController(api).WithLogger(logger)

	nav, err := controller.Login(context.Background(), auth.LoginPayload{
		EmailAddress: "dana@example.com",
		Password:     "hunter2222",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.DestPetOwnerDashboard, nav.Destination)
}

func TestControllerWarnsWhenCredentialSaveFails(t *testing.T) {
	logger := &captureLogger{}
	api := &MockAPIClient{}
	creds := &MockCredentialStore{}

	api.On("Login", mock.Anything, mock.Anything).
		Return(&auth.LoginResult{User: petOwner(), Token: "token-1"}, nil)
	creds.On("Save", mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	controller := auth.NewController(api).
		WithLogger(logger).
		WithCredentialStore(creds)

	_, err := controller.Login(context.Background(), auth.LoginPayload{
		EmailAddress: "dana@example.com",
		Password:     "hunter2222",
	})
	require.NoError(t, err)

	require.NotEmpty(t, logger.calls)
	assert.Equal(t, "warn", logger.calls[0].level)
	assert.Contains(t, logger.calls[0].message, "persist credential record")
}

func TestControllerWarnsWhenActivitySinkFails(t *testing.T) {
	logger := &captureLogger{}
	expectedErr := errors.New("sink unavailable")
	sink := auth.ActivitySinkFunc(func(context.Context, auth.ActivityEvent) error {
		return expectedErr
	})

	controller := auth.NewController(&MockAPIClient{}).
		WithLogger(logger).
		WithActivitySink(sink)

	_, err := controller.Logout(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, logger.calls)
	assert.Equal(t, "warn", logger.calls[0].level)
	assert.Contains(t, logger.calls[0].message, "activity sink record error")
	assert.Equal(t, []any{expectedErr}, logger.calls[0].args)
}
