package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Messages attached to navigation context when the server does not provide
// its own.
const (
	msgRegistrationSuccess = "Registration successful. Please sign in to continue."
	msgAccountVerified     = "Email verified. Please sign in to continue."
)

// Controller orchestrates the remote auth API and owns all mutations of the
// SessionStore. Operations return a Navigation value describing where the UI
// should go next; they never navigate themselves. Failures are classified
// into the package error taxonomy, written to the store, and returned — they
// never escape unclassified.
type Controller struct {
	api    APIClient
	store  *SessionStore
	creds  CredentialStore
	logger Logger
	sink   ActivitySink
	now    func() time.Time
	debug  bool
}

// NewController returns a Controller bound to the given API client, with an
// anonymous session store and no durable credential storage.
func NewController(api APIClient) *Controller {
	return &Controller{
		api:    api,
		store:  NewSessionStore(),
		creds:  noopCredentialStore{},
		logger: defLogger{},
		sink:   noopActivitySink{},
		now:    time.Now,
	}
}

func (c *Controller) WithLogger(logger Logger) *Controller {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithSessionStore injects a store instance, useful for sharing one store
// between the controller and route guards, or isolating state in tests.
func (c *Controller) WithSessionStore(store *SessionStore) *Controller {
	if store != nil {
		c.store = store
	}
	return c
}

// WithCredentialStore configures durable storage for the credential record.
func (c *Controller) WithCredentialStore(store CredentialStore) *Controller {
	c.creds = normalizeCredentialStore(store)
	return c
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (c *Controller) WithActivitySink(sink ActivitySink) *Controller {
	c.sink = normalizeActivitySink(sink)
	return c
}

// WithClock injects a custom clock (useful for tests).
func (c *Controller) WithClock(clock func() time.Time) *Controller {
	if clock != nil {
		c.now = clock
	}
	return c
}

func (c *Controller) WithDebug(debug bool) *Controller {
	c.debug = debug
	return c
}

// Session returns the store this controller mutates. Guards and UI read
// snapshots from it; they must never write.
func (c *Controller) Session() *SessionStore {
	return c.store
}

// Snapshot is shorthand for Session().Snapshot().
func (c *Controller) Snapshot() SessionSnapshot {
	return c.store.Snapshot()
}

// Register creates a new account. On success the user is sent to the login
// screen carrying a confirmation message; registration never authenticates.
func (c *Controller) Register(ctx context.Context, payload RegisterPayload) (*Navigation, error) {
	if err := payload.Validate(); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}

	if c.debug {
		c.logger.Debug("register payload: %s", print.MaybePrettyJSON(payload))
	}

	seq := c.store.begin(OpRegister)

	result, err := c.api.Register(ctx, RegisterInput{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		EmailAddress: payload.EmailAddress,
		Password:     payload.Password,
		Gender:       payload.Gender,
		Role:         payload.Role,
	})
	if err != nil {
		rich := classifyRegisterError(err)
		c.store.operationFailed(OpRegister, seq, rich)
		c.record(ctx, ActivityEvent{
			EventType:    ActivityEventRegisterFailure,
			EmailAddress: payload.EmailAddress,
			Metadata:     map[string]any{"error": rich.Message},
		})
		return nil, rich
	}

	c.store.operationSucceeded(OpRegister, seq)

	email := result.EmailAddress
	if email == "" {
		email = payload.EmailAddress
	}
	message := result.Message
	if message == "" {
		message = msgRegistrationSuccess
	}

	c.record(ctx, ActivityEvent{
		EventType:    ActivityEventRegisterSuccess,
		EmailAddress: email,
	})

	return &Navigation{
		Destination: DestLogin,
		Context:     &VerificationContext{EmailAddress: email, Message: message},
	}, nil
}

// Login authenticates against the remote API. On success the credential set
// is installed in the store, persisted durably, and the user is routed to
// their role's dashboard. A 403 rejection carrying the account identifiers is
// the one recoverable failure: it flips the session to pending verification
// and routes into the verify-code screen with the server-reported email
// address and user id.
func (c *Controller) Login(ctx context.Context, payload LoginPayload) (*Navigation, error) {
	if err := payload.Validate(); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	seq := c.store.begin(OpLogin)

	result, err := c.api.Login(ctx, LoginInput{
		EmailAddress: payload.EmailAddress,
		Password:     payload.Password,
	})
	if err != nil {
		rich := classifyLoginError(err)
		applied := c.store.operationFailed(OpLogin, seq, rich)
		c.record(ctx, ActivityEvent{
			EventType:    ActivityEventLoginFailure,
			EmailAddress: payload.EmailAddress,
			Metadata:     map[string]any{"error": rich.Message, "text_code": rich.TextCode},
		})

		if vctx, ok := UnverifiedContext(rich); ok {
			if applied {
				c.store.markPendingVerification()
			}
			return &Navigation{Destination: DestVerifyCode, Context: vctx}, rich
		}
		return nil, rich
	}

	applied := c.store.loginSucceeded(seq, result.User, result.Token)
	if applied {
		if err := c.creds.Save(ctx, PersistedSession{Token: result.Token, User: result.User}); err != nil {
			// The session stays valid for this run; it just won't survive
			// a reload.
			c.logger.Warn("persist credential record: %v", err)
		}
	}

	c.record(ctx, ActivityEvent{
		EventType:    ActivityEventLoginSuccess,
		UserID:       result.User.ID,
		EmailAddress: result.User.EmailAddress,
		Metadata:     map[string]any{"role": result.User.Role},
	})

	return &Navigation{Destination: DestinationFor(result.User.Role)}, nil
}

// SendVerificationCode asks the server to issue (or re-issue) a one-time
// code. The verify screen auto-triggers this on entry and may call it again
// for a resend; the server treats repeat sends as idempotent.
func (c *Controller) SendVerificationCode(ctx context.Context, payload SendCodePayload) (*Navigation, error) {
	if err := payload.Validate(); err != nil {
		return nil, validationError(err, "invalid verification request")
	}

	seq := c.store.begin(OpSendCode)

	_, err := c.api.SendVerificationCode(ctx, SendCodeInput{
		EmailAddress: payload.EmailAddress,
		UserID:       payload.UserID,
	})
	if err != nil {
		rich := classifyOTPError(err)
		c.store.operationFailed(OpSendCode, seq, rich)
		c.record(ctx, ActivityEvent{
			EventType:    ActivityEventCodeSendFailure,
			UserID:       payload.UserID,
			EmailAddress: payload.EmailAddress,
			Metadata:     map[string]any{"error": rich.Message},
		})
		return nil, rich
	}

	c.store.operationSucceeded(OpSendCode, seq)
	c.record(ctx, ActivityEvent{
		EventType:    ActivityEventCodeSent,
		UserID:       payload.UserID,
		EmailAddress: payload.EmailAddress,
	})

	return nil, nil
}

// VerifyCode submits the one-time code. The code is normalized first:
// non-digit characters are stripped, never rejected. Success routes back to
// the login screen — verification does not authenticate; only Login does.
func (c *Controller) VerifyCode(ctx context.Context, payload VerifyCodePayload) (*Navigation, error) {
	payload.OTPCode = NormalizeOTP(payload.OTPCode)
	if err := payload.Validate(); err != nil {
		return nil, validationError(err, "invalid verification code")
	}

	seq := c.store.begin(OpVerifyCode)

	result, err := c.api.VerifyCode(ctx, VerifyCodeInput{
		EmailAddress: payload.EmailAddress,
		OTPCode:      payload.OTPCode,
	})
	if err != nil {
		rich := classifyOTPError(err)
		c.store.operationFailed(OpVerifyCode, seq, rich)
		c.record(ctx, ActivityEvent{
			EventType:    ActivityEventCodeRejected,
			EmailAddress: payload.EmailAddress,
			Metadata:     map[string]any{"error": rich.Message},
		})
		return nil, rich
	}

	c.store.operationSucceeded(OpVerifyCode, seq)

	email := result.EmailAddress
	if email == "" {
		email = payload.EmailAddress
	}
	message := result.Message
	if message == "" {
		message = msgAccountVerified
	}

	c.record(ctx, ActivityEvent{
		EventType:    ActivityEventCodeVerified,
		EmailAddress: email,
	})

	return &Navigation{
		Destination: DestLogin,
		Context:     &VerificationContext{EmailAddress: email, Message: message},
	}, nil
}

// Logout resets the session and removes the persisted credential record.
func (c *Controller) Logout(ctx context.Context) (*Navigation, error) {
	snap := c.store.Snapshot()
	c.store.logout()

	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Warn("clear credential record: %v", err)
	}

	event := ActivityEvent{EventType: ActivityEventLogout}
	if snap.User != nil {
		event.UserID = snap.User.ID
		event.EmailAddress = snap.User.EmailAddress
	}
	c.record(ctx, event)

	return &Navigation{Destination: DestHome}, nil
}

// Rehydrate loads the persisted credential record, if any, and restores an
// authenticated session. Called once at application start. A persisted token
// that is a JWT past its expiry is discarded along with the stored record;
// opaque tokens are accepted as-is and left for the server to reject.
func (c *Controller) Rehydrate(ctx context.Context) (bool, error) {
	record, err := c.creds.Load(ctx)
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryOperation, "load credential record")
	}
	if record == nil || record.Token == "" {
		return false, nil
	}

	if IsExpiredToken(record.Token, c.now()) {
		c.logger.Info("discarding expired credential record")
		if err := c.creds.Clear(ctx); err != nil {
			c.logger.Warn("clear credential record: %v", err)
		}
		return false, nil
	}

	c.store.restore(record.User, record.Token)
	c.record(ctx, ActivityEvent{
		EventType:    ActivityEventSessionRestored,
		UserID:       record.User.ID,
		EmailAddress: record.User.EmailAddress,
	})

	return true, nil
}

// record emits an activity event best-effort; sink failures are logged and
// never block the operation.
func (c *Controller) record(ctx context.Context, event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.now()
	}

	sink := normalizeActivitySink(c.sink)
	if err := sink.Record(ctx, event); err != nil {
		c.logger.Warn("activity sink record error: %v", err)
	}
}
