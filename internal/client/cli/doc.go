// Package cli provides the interactive support-portal command-line client.
//
// It wires configuration, the local session store, the backend gateway and
// the login/registration screens into a REPL. The prompt shows the current
// route; the screen bound to that route decides what "login" and "register"
// do, and the management commands are guarded by the stored session.
//
// Key features:
//   - Login / Register / Logout / Whoami
//   - List users (fresh or cached), add, update, delete
//   - Reset a password, upload a profile image with progress
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
