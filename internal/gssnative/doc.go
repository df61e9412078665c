// SPDX-License-Identifier: Apache-2.0

// Package gssnative wraps the system GSS-API library (RFC 2743/2744) with
// cgo bindings scoped to exactly the acceptor-side surface this proxy
// needs: importing a service name, acquiring an acceptor credential,
// driving gss_accept_sec_context to completion, and rendering mechanism
// status codes as readable diagnostics.
//
// Every native buffer, name and context handle allocated by the mechanism
// is released before this package hands ownership of its contents to the
// caller as a plain Go value. Nothing in this package is safe for
// concurrent use on the same SecContext; that serialization is enforced
// one layer up, in internal/worker.
package gssnative
