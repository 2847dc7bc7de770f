// Package routeguard adapts the pure auth guards to go-router middleware.
// The guard decision tables live in the auth package; this package only
// turns a deny into an HTTP redirect and stashes the session on the request
// context for downstream handlers.
package routeguard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"

	auth "github.com/pawprint/go-auth"
)

// SessionReader exposes session snapshots without import cycles; both
// *auth.SessionStore and *auth.Controller satisfy it.
type SessionReader interface {
	Snapshot() auth.SessionSnapshot
}

// Config holds guard middleware options.
type Config struct {
	// Session is the snapshot source consulted on every request. Required.
	Session SessionReader
	// AllowedRoles restricts Protected routes to a role subset. Empty means
	// any authenticated role.
	AllowedRoles []auth.UserRole
	// Filter skips the guard for matching requests (static assets etc).
	Filter func(router.Context) bool
	Logger auth.Logger
	Debug  bool
}

func (cfg Config) logger() auth.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return noopLogger{}
}

// Protected guards routes that require an authenticated session, optionally
// restricted to a set of roles. Denied requests are redirected, never
// rendered.
func Protected(cfg Config) router.MiddlewareFunc {
	if cfg.Session == nil {
		panic("routeguard: Config.Session is required")
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if cfg.Filter != nil && cfg.Filter(c) {
				return c.Next()
			}

			snap := cfg.Session.Snapshot()
			decision := auth.ProtectedGuard(snap, cfg.AllowedRoles...)

			if cfg.Debug {
				cfg.logger().Debug("protected guard %s: %s", c.Path(), print.MaybePrettyJSON(decision))
			}

			if !decision.Allow {
				cfg.logger().Info(
					"protected route denied path=%s status=%s redirect=%s",
					c.Path(), snap.Status, decision.RedirectTo,
				)
				return c.Redirect(decision.RedirectTo, redirectStatus(c))
			}

			c.SetContext(auth.WithSessionContext(c.Context(), snap))
			if snap.User != nil {
				c.SetContext(auth.WithContext(c.Context(), snap.User))
			}

			return next(c)
		}
	}
}

// Public guards visitor-only routes (login, signup, verification); a fully
// authenticated session is bounced to its dashboard.
func Public(cfg Config) router.MiddlewareFunc {
	if cfg.Session == nil {
		panic("routeguard: Config.Session is required")
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if cfg.Filter != nil && cfg.Filter(c) {
				return c.Next()
			}

			snap := cfg.Session.Snapshot()
			decision := auth.PublicGuard(snap)

			if !decision.Allow {
				cfg.logger().Info(
					"public route bounced path=%s redirect=%s",
					c.Path(), decision.RedirectTo,
				)
				return c.Redirect(decision.RedirectTo, redirectStatus(c))
			}

			c.SetContext(auth.WithSessionContext(c.Context(), snap))

			return next(c)
		}
	}
}

func redirectStatus(c router.Context) int {
	if c.Method() == string(router.GET) {
		return fiber.StatusFound
	}
	return fiber.StatusSeeOther
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
