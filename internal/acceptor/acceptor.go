// SPDX-License-Identifier: Apache-2.0

// Package acceptor wraps one gssnative security context behind the
// AcceptOutcome tagged union the rest of this proxy speaks, so nothing
// above the Worker has to know gssnative's native buffer/status details.
package acceptor

import (
	"encoding/base64"
	"fmt"

	"github.com/ktosiek/spnego-proxy/internal/gssnative"
)

// AppToken is an immutable output token destined for a WWW-Authenticate
// header, already safe to base64-encode.
type AppToken []byte

// Base64 renders the token the way it's sent on the wire; an empty token
// renders as an empty string, which callers must check for before adding
// the header at all (an empty parameter is not the same as no parameter).
func (t AppToken) Base64() string {
	if len(t) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(t)
}

// PrincipalName is the authenticated client's display name, e.g.
// "alice@EXAMPLE.ORG".
type PrincipalName string

// Outcome is a tagged union: exactly one of ContinueNeeded, Accepted or
// Failed is meaningful, selected by Kind.
type Outcome struct {
	Kind      OutcomeKind
	Token     AppToken      // ContinueNeeded, Accepted
	Principal PrincipalName // Accepted only
	Err       error         // Failed only; a *gssnative.MechError, or a plain error for an empty continue token
}

type OutcomeKind int

const (
	ContinueNeeded OutcomeKind = iota
	Accepted
	Failed
)

// Acceptor wraps exactly one native security context. Not safe for
// concurrent use; the Worker is what serializes calls onto it.
type Acceptor struct {
	ctx  *gssnative.SecContext
	cred *gssnative.Credential
}

// New returns an Acceptor that will use cred (possibly nil, meaning the
// mechanism's default acceptor credential) to accept contexts.
func New(cred *gssnative.Credential) *Acceptor {
	return &Acceptor{ctx: gssnative.NewAcceptorContext(), cred: cred}
}

// Accept drives one leg of the handshake with the token most recently
// received from the client. It must not be called again once a non-
// ContinueNeeded Outcome has been returned.
func (a *Acceptor) Accept(inputToken []byte) Outcome {
	result, err := a.ctx.Accept(a.cred, inputToken)
	if err != nil {
		return Outcome{Kind: Failed, Err: err}
	}

	if result.ContinueNeeded {
		if len(result.OutputToken) == 0 {
			return Outcome{Kind: Failed, Err: fmt.Errorf("gss_accept_sec_context: continue needed but no output token produced")}
		}
		return Outcome{Kind: ContinueNeeded, Token: AppToken(result.OutputToken)}
	}

	return Outcome{
		Kind:      Accepted,
		Token:     AppToken(result.OutputToken),
		Principal: PrincipalName(result.InitiatorName),
	}
}

// Close releases the native security context. A release failure is
// returned to the caller; it is not itself an authentication error. The
// Worker, the only caller, discards it without logging.
func (a *Acceptor) Close() error {
	return a.ctx.Delete()
}
