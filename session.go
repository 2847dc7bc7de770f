package auth

import (
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// OperationKind identifies one of the controller's asynchronous operations.
type OperationKind string

const (
	OpRegister   OperationKind = "register"
	OpLogin      OperationKind = "login"
	OpSendCode   OperationKind = "send_code"
	OpVerifyCode OperationKind = "verify_code"
)

// SessionSnapshot is an immutable read of the session at a point in time.
// Guards and UI code consume snapshots; they never mutate the store.
type SessionSnapshot struct {
	Status  SessionStatus
	User    *User
	Token   string
	Loading bool
	Err     *goerrors.Error
}

// Authenticated reports whether the snapshot holds a full credential set:
// authenticated status, token, and user profile.
func (s SessionSnapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != "" && s.User != nil
}

// SessionStore is the single holder of client auth state. It is an explicit,
// injectable container: construct one per application (or per test) and hand
// it to the Controller. Only the Controller dispatches mutations; everything
// else reads via Snapshot.
//
// Overlapping operations resolve latest-wins: each begin() issues a sequence
// number per operation kind and completions carrying a stale sequence are
// discarded.
type SessionStore struct {
	mu      sync.RWMutex
	status  SessionStatus
	user    *User
	token   string
	loading bool
	err     *goerrors.Error
	issued  map[OperationKind]uint64
}

// NewSessionStore returns an anonymous session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		status: StatusAnonymous,
		issued: map[OperationKind]uint64{},
	}
}

// Snapshot returns a copy of the current session state.
func (s *SessionStore) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		Status:  s.status,
		Token:   s.token,
		Loading: s.loading,
		Err:     s.err,
	}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}

// begin marks an operation in flight: loading is set and the previous error
// cleared. Returns the sequence number the completion must present.
func (s *SessionStore) begin(kind OperationKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[kind]++
	s.loading = true
	s.err = nil
	return s.issued[kind]
}

// loginSucceeded installs the credential set and flips the session to
// authenticated. Reports whether the update was applied (false if stale).
func (s *SessionStore) loginSucceeded(seq uint64, user User, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.issued[OpLogin] {
		return false
	}

	s.status = StatusAuthenticated
	s.user = &user
	s.token = token
	s.loading = false
	s.err = nil
	return true
}

// operationSucceeded clears loading without touching status; register, send
// code, and verify code never authenticate by themselves.
func (s *SessionStore) operationSucceeded(kind OperationKind, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.issued[kind] {
		return false
	}

	s.loading = false
	return true
}

// operationFailed records the classified error. Status is left unchanged.
func (s *SessionStore) operationFailed(kind OperationKind, seq uint64, err *goerrors.Error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.issued[kind] {
		return false
	}

	s.loading = false
	s.err = err
	return true
}

// markPendingVerification moves the session into the verification flow after
// a login was rejected for an unverified account. The state never carries a
// token.
func (s *SessionStore) markPendingVerification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusPendingVerification
	s.user = nil
	s.token = ""
}

// restore rehydrates an authenticated session from the persisted credential
// record at startup.
func (s *SessionStore) restore(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusAuthenticated
	s.user = &user
	s.token = token
	s.loading = false
	s.err = nil
}

// logout resets the store to its anonymous zero state. Every in-flight
// operation is superseded so a late completion cannot resurrect the cleared
// session.
func (s *SessionStore) logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for kind := range s.issued {
		s.issued[kind]++
	}

	s.status = StatusAnonymous
	s.user = nil
	s.token = ""
	s.loading = false
	s.err = nil
}
