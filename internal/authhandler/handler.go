// SPDX-License-Identifier: Apache-2.0

// Package authhandler implements the per-request authentication state
// machine: for every request on a session it consults the session's phase,
// drives the SPNEGO handshake through the session's Worker, and either
// answers with a 401 challenge or hands the request to the backend proxy.
package authhandler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
	"github.com/ktosiek/spnego-proxy/internal/logging"
	"github.com/ktosiek/spnego-proxy/internal/session"
)

// Submitter is the single operation the Handler needs to drive a
// handshake forward, kept as an interface (mirroring Proxy) so the
// outcome dispatch can be tested without a real Worker.
type Submitter interface {
	Submit(token []byte, ctxDone <-chan struct{}) (acceptor.Outcome, bool)
}

// Proxy is the single operation the Handler needs from the backend
// proxying step, kept as an interface so the state machine can be tested
// without standing up a real backend.
type Proxy interface {
	Forward(w http.ResponseWriter, r *http.Request, principal acceptor.PrincipalName, mutualAuth string)
}

// Handler drives the authentication state machine for one Session per
// request and forwards authenticated requests via proxy.
type Handler struct {
	Proxy  Proxy
	Logger *logging.Logger
}

func (h *Handler) errorf(format string, args ...any) {
	if h.Logger != nil {
		h.Logger.Errorf(format, args...)
	}
}

// parseAuthzHeader splits the Authorization header into its scheme token
// and the remainder, or ("", "") if the header is absent or malformed. The
// scheme is returned verbatim, not case-folded: only an exact "Negotiate"
// match is accepted.
func parseAuthzHeader(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// extractToken parses the Authorization header: a missing header, a
// scheme other than exactly "Negotiate", or a base64 decode failure are
// all treated identically as "no token".
func extractToken(r *http.Request) ([]byte, bool) {
	scheme, rest := parseAuthzHeader(r)
	if scheme != "Negotiate" {
		return nil, false
	}
	if rest == "" {
		return nil, false
	}
	tok, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, false
	}
	return tok, true
}

func challenge(w http.ResponseWriter, param string, body string) {
	if param == "" {
		w.Header().Set("WWW-Authenticate", "Negotiate")
	} else {
		w.Header().Set("WWW-Authenticate", "Negotiate "+param)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(body))
}

// ServeHTTP drives the per-request authentication state machine: consult
// the session phase, extract any Negotiate token, and either challenge,
// drive the handshake forward, or hand the request to the backend.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	unlock := sess.Lock()
	defer unlock()

	if sess.Phase() == session.Established {
		h.Proxy.Forward(w, r, sess.Principal(), "")
		return
	}

	tok, hasTok := extractToken(r)
	if !hasTok {
		challenge(w, "", "no authorization")
		return
	}

	handle := sess.Worker()
	if handle == nil {
		// Programmer invariant: InProgress sessions always own a Worker.
		h.errorf("authhandler: InProgress session has no Worker")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	var wrk Submitter = handle

	outcome, ok := wrk.Submit(tok, r.Context().Done())
	if !ok {
		// The Worker died or the request was canceled; either way there's
		// nothing to answer the client with.
		return
	}

	switch outcome.Kind {
	case acceptor.ContinueNeeded:
		challenge(w, outcome.Token.Base64(), "negotiation continues")

	case acceptor.Accepted:
		sess.Establish(outcome.Principal)
		h.Proxy.Forward(w, r, outcome.Principal, outcome.Token.Base64())

	case acceptor.Failed:
		h.errorf("authhandler: handshake failed: %v", outcome.Err)
		challenge(w, "", "Authentication failed")

	default:
		h.errorf("authhandler: unknown outcome kind %v", outcome.Kind)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
