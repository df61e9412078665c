// SPDX-License-Identifier: Apache-2.0

// Package frontend binds the TCP listener and wires one Session per
// accepted connection into net/http's own request lifecycle, by wrapping
// http.Server.ConnContext and ConnState.
package frontend

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
	"github.com/ktosiek/spnego-proxy/internal/authhandler"
	"github.com/ktosiek/spnego-proxy/internal/gssnative"
	"github.com/ktosiek/spnego-proxy/internal/session"
	"github.com/ktosiek/spnego-proxy/internal/worker"
)

// Server wraps an *http.Server pre-configured to attach a fresh Session
// (and its own Worker/Acceptor) to every accepted connection.
type Server struct {
	*http.Server
}

// New builds a Server listening on addr, dispatching authenticated
// requests through handler. cred is the acceptor credential every Worker's
// Acceptor is constructed with (nil for the mechanism's default).
func New(addr string, handler *authhandler.Handler, cred *gssnative.Credential) *Server {
	mux := http.NewServeMux()
	mux.Handle("/", handler)

	var sessions sync.Map // net.Conn -> *session.Session

	stash := session.ConnContext(func() *worker.Worker {
		return worker.New(acceptor.New(cred))
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
		ConnContext: func(ctx context.Context, c net.Conn) context.Context {
			ctx = stash(ctx, c)
			sessions.Store(c, session.FromContext(ctx))
			return ctx
		},
		ConnState: func(c net.Conn, state http.ConnState) {
			switch state {
			case http.StateClosed, http.StateHijacked:
				if v, ok := sessions.LoadAndDelete(c); ok {
					v.(*session.Session).Close()
				}
			}
		},
	}

	return &Server{Server: srv}
}

// ListenAndServe starts accepting connections; it blocks until the server
// stops, returning http.ErrServerClosed on a graceful Shutdown.
func (s *Server) ListenAndServe() error {
	return s.Server.ListenAndServe()
}
