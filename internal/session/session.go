// SPDX-License-Identifier: Apache-2.0

// Package session holds per-frontend-TCP-connection authentication state
// and stashes it into the request context via http.Server.ConnContext.
package session

import (
	"context"
	"net"
	"sync"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
	"github.com/ktosiek/spnego-proxy/internal/worker"
)

// Phase is the per-session authentication phase, exactly one of InProgress
// or Established.
type Phase int

const (
	InProgress Phase = iota
	Established
)

// WorkerHandle is the behavior Session needs from the per-connection
// handshake worker: submit a token and get back an outcome, and release
// it once the handshake concludes. *worker.Worker satisfies this.
type WorkerHandle interface {
	Submit(token []byte, ctxDone <-chan struct{}) (acceptor.Outcome, bool)
	Close()
}

// Session is created once per accepted frontend TCP connection and
// destroyed when that connection closes. Its phase is mutated only while
// mu is held, by the Handler processing the one request currently
// permitted to touch it.
type Session struct {
	mu        sync.Mutex
	phase     Phase
	principal acceptor.PrincipalName
	w         WorkerHandle
}

// New creates a Session in phase InProgress, owning w for the life of the
// handshake.
func New(w WorkerHandle) *Session {
	return &Session{phase: InProgress, w: w}
}

// Lock acquires exclusive access to the session's phase for the duration
// of one request. Callers must call the returned unlock func exactly once.
// No second request on the same connection may call Lock until the first
// has unlocked, which is what gives the handshake its connection-wide
// serialization.
func (s *Session) Lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// Phase reports the current phase. Callers must hold the session lock.
func (s *Session) Phase() Phase { return s.phase }

// Principal reports the established principal. Only meaningful once Phase
// is Established; callers must hold the session lock.
func (s *Session) Principal() acceptor.PrincipalName { return s.principal }

// Worker returns the session's Worker. Only meaningful while Phase is
// InProgress; nil once Established, since the Worker is released on
// transition.
func (s *Session) Worker() WorkerHandle { return s.w }

// Establish transitions the session to Established(principal) and releases
// its Worker: nothing calls Accept again for this connection. Callers must
// hold the session lock.
func (s *Session) Establish(principal acceptor.PrincipalName) {
	s.phase = Established
	s.principal = principal
	if s.w != nil {
		s.w.Close()
		s.w = nil
	}
}

// Close releases the session's Worker, if one is still owned (handshake
// never completed, e.g. the connection dropped mid-negotiation).
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w != nil {
		s.w.Close()
		s.w = nil
	}
}

type contextKey struct{ name string }

func (k *contextKey) String() string { return "session context value " + k.name }

var sessionContextKey = &contextKey{"spnego-session"}

// ConnContext is installed as an http.Server's ConnContext hook. It creates
// one Session per accepted connection, backed by a freshly constructed
// Worker, and stashes it into the per-connection context net/http threads
// through to every request on that connection.
func ConnContext(newWorker func() *worker.Worker) func(ctx context.Context, c net.Conn) context.Context {
	return func(ctx context.Context, c net.Conn) context.Context {
		return NewContext(ctx, New(newWorker()))
	}
}

// NewContext returns a copy of ctx carrying sess, retrievable by
// FromContext. Exported for tests and for any code path that needs to
// stash a Session outside of ConnContext's per-connection hook.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// FromContext retrieves the Session stashed by ConnContext for the
// connection the given request arrived on. It panics if called outside a
// server wired with ConnContext, which would be a programmer error.
func FromContext(ctx context.Context) *Session {
	sess, ok := ctx.Value(sessionContextKey).(*Session)
	if !ok {
		panic("session: no Session in context; server not wired with session.ConnContext")
	}
	return sess
}
