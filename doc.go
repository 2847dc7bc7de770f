// Package auth is the client-side session and authentication controller for
// the pet-clinic storefront. It orchestrates a remote auth API (register,
// login, one-time-code issuance and verification) and owns the policy that
// decides what the user may see next.
//
// Session lifecycle:
//   - SessionStore is an explicit, injectable state container. It tracks the
//     current status (anonymous, pending verification, authenticated), the
//     user profile, the credential token, and the latest operation error.
//     Only the Controller mutates it; guards and UI code read snapshots.
//   - Controller runs the four asynchronous operations against an APIClient
//     and returns Navigation values ("go to X carrying context Y") instead of
//     performing transitions itself, so the routing layer stays pluggable.
//
// Access control:
//   - DestinationFor is the single role -> dashboard mapping shared by login
//     routing, both guards, and navigation chrome.
//   - ProtectedGuard and PublicGuard are pure decisions over a
//     SessionSnapshot. middleware/routeguard adapts them to go-router
//     middleware for HTTP apps.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter describing register,
//     login, verification, and logout events. Sinks run best-effort (errors
//     are logged) so you can forward to a database or queue without blocking
//     authentication.
package auth
