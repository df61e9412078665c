// SPDX-License-Identifier: Apache-2.0

package gssnative

/*
#cgo LDFLAGS: -lgssapi_krb5
#include <gssapi.h>
*/
import "C"

// AcceptResult is the outcome of one gss_accept_sec_context call: either
// more input is needed (ContinueNeeded true, OutputToken carries the token
// to send back to the initiator), or the context is established
// (ContinueNeeded false, InitiatorName is populated and OutputToken may
// still carry a final token the mechanism wants delivered, e.g. for mutual
// authentication).
type AcceptResult struct {
	ContinueNeeded bool
	OutputToken    []byte
	InitiatorName  string
	Mech           GssMech
}

// SecContext wraps a gss_ctx_id_t used on the acceptor side. It is not safe
// for concurrent use; callers serialize calls to Accept per context
// (internal/worker does this by construction, one goroutine per context).
type SecContext struct {
	id   C.gss_ctx_id_t
	done bool
}

// NewAcceptorContext returns a fresh, not-yet-established security context.
// The first call to Accept initializes the underlying gss_ctx_id_t.
func NewAcceptorContext() *SecContext {
	return &SecContext{}
}

// Accept drives one leg of GSS_Accept_sec_context (RFC 2743 §2.2.2) with the
// token most recently received from the initiator. cred may be nil, in
// which case the mechanism's default acceptor credential is used
// (GSS_C_NO_CREDENTIAL).
//
// Each call may need to be followed by more calls, as indicated by
// AcceptResult.ContinueNeeded, until the mechanism reports completion or
// returns an error. Calling Accept again after a non-continuing result is
// invalid.
func (c *SecContext) Accept(cred *Credential, inputToken []byte) (*AcceptResult, error) {
	inBuf, inPinner := cBuffer(inputToken)
	defer inPinner.Unpin()

	var credID C.gss_cred_id_t
	if cred != nil {
		credID = cred.id
	}

	var srcName C.gss_name_t
	var mechType C.gss_OID
	var outBuf C.gss_buffer_desc
	var retFlags C.OM_uint32
	var lifetimeRec C.OM_uint32
	var delegatedCred C.gss_cred_id_t

	var minor C.OM_uint32
	major := C.gss_accept_sec_context(
		&minor,
		&c.id,
		credID,
		&inBuf,
		C.GSS_C_NO_CHANNEL_BINDINGS,
		&srcName,
		&mechType,
		&outBuf,
		&retFlags,
		&lifetimeRec,
		&delegatedCred,
	)
	defer releaseBuffer(&outBuf)

	if major != C.GSS_S_COMPLETE && major != C.GSS_S_CONTINUE_NEEDED {
		c.done = true
		mech, _ := mechFromOid(goOid(mechType))
		return nil, makeStatus("gss_accept_sec_context", major, minor, mech)
	}

	if delegatedCred != nil {
		// Delegation is not used by this proxy; release immediately rather
		// than leaking the credential handle.
		var m C.OM_uint32
		C.gss_release_cred(&m, &delegatedCred)
	}

	result := &AcceptResult{
		ContinueNeeded: major == C.GSS_S_CONTINUE_NEEDED,
		OutputToken:    goBytes(outBuf),
	}
	if mech, ok := mechFromOid(goOid(mechType)); ok {
		result.Mech = mech
	}

	if !result.ContinueNeeded {
		c.done = true
		if srcName != nil {
			name := &Name{id: srcName}
			defer name.Release()
			disp, err := name.Display()
			if err != nil {
				return nil, err
			}
			result.InitiatorName = disp
		}
	}

	return result, nil
}

// ContinueNeeded reports whether the last Accept call indicated more input
// is required.
func (c *SecContext) ContinueNeeded() bool {
	return c.id != nil && !c.done
}

// Delete implements GSS_Delete_sec_context (RFC 2743 §2.2.3). Safe to call
// on a context that was never established, or more than once.
func (c *SecContext) Delete() error {
	if c.id == nil {
		return nil
	}
	var minor C.OM_uint32
	var outBuf C.gss_buffer_desc
	major := C.gss_delete_sec_context(&minor, &c.id, &outBuf)
	releaseBuffer(&outBuf)
	c.id = nil
	if major != C.GSS_S_COMPLETE {
		return makeStatus("gss_delete_sec_context", major, minor, MechKRB5)
	}
	return nil
}

