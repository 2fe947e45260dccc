// Package client is the remote user gateway of the support-portal CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with one
//     method per backend action: Login, Register, GetUsers, AddUser,
//     UpdateUser, ResetPassword, UpdateProfileImage and DeleteUser.
//  2. A concrete HTTP implementation (see HTTPClient). Each call is a single
//     request to BaseURL plus a fixed path. Nothing is retried, de-duplicated
//     or timed out by the gateway itself; callers bound calls with their context.
//  3. The multipart form builder (CreateUserFormData, FormData) used by the
//     add, update and profile-image operations.
//
// # Authorization
//
// When constructed WithTokenSource, every request to a non-public path
// carries "Authorization: Bearer <token>". Every request carries a fresh
// X-Request-Id.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError holding the status and the
// decoded backend envelope. Transport failures are returned as the transport's
// own error, wrapped with the operation name. The gateway does not classify
// errors; that is left to callers (see errors.As).
package client
