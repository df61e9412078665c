// SPDX-License-Identifier: Apache-2.0

package gssnative

/*
#cgo LDFLAGS: -lgssapi_krb5
#include <gssapi.h>
*/
import "C"

import (
	"fmt"
	"strings"
)

// MechError reports a failed GSSAPI call. Major/Minor are the raw status
// codes from RFC 2743 §3.9.1 (calling-error / routine-error / supplementary
// info bits packed into Major, mechanism-specific detail in Minor); Messages
// holds the human-readable strings gss_display_status produced, one per
// message_context iteration: first those for the major code's routine
// error, then those for the minor code.
type MechError struct {
	Call     string
	Major    uint32
	Minor    uint32
	Messages []string
}

func (e *MechError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s: gss major=%#x minor=%#x", e.Call, e.Major, e.Minor)
	}
	return fmt.Sprintf("%s: %s", e.Call, strings.Join(e.Messages, "; "))
}

// routineErrorCode extracts the routine-error bits (bits 16-23) from a GSS
// major status, the ones meaningful to display alongside the mechanism's
// minor-status text. They are left in place, unshifted, which is the form
// gss_display_status expects for a GSS_C_GSS_CODE status value.
func routineErrorCode(major C.OM_uint32) C.OM_uint32 {
	const gssCRoutineErrorMask = 0x00ff0000
	return major & gssCRoutineErrorMask
}

// displayStatusMessages iterates gss_display_status against one status
// code/type pair, feeding the message_context cookie back until the
// mechanism reports it has nothing more to say, and returns every
// non-empty message segment produced along the way.
func displayStatusMessages(code, statusType C.OM_uint32, mechOid C.gss_OID) []string {
	var messages []string
	var msgCtx C.OM_uint32
	for {
		var statusString C.gss_buffer_desc
		var lMinor C.OM_uint32
		maj := C.gss_display_status(&lMinor, code, statusType, mechOid, &msgCtx, &statusString)
		if maj != C.GSS_S_COMPLETE {
			break
		}
		if s := string(goBytes(statusString)); s != "" {
			messages = append(messages, s)
		}
		releaseBuffer(&statusString)
		if msgCtx == 0 {
			break
		}
	}
	return messages
}

// makeStatus decodes a failed major/minor status pair into a *MechError.
// Both status facilities are consulted and concatenated: the major (GSS)
// code via GSS_C_GSS_CODE, mechanism independent, and the minor code via
// GSS_C_MECH_CODE against the mechanism's own OID (when known). Either can
// carry the only diagnostic text a given failure actually sets, so neither
// is treated as a fallback for the other.
func makeStatus(call string, major, minor C.OM_uint32, mech GssMech) error {
	err := &MechError{
		Call:  call,
		Major: uint32(major),
		Minor: uint32(minor),
	}

	mechOidDesc, pinner := cOid(mech.Oid())
	defer pinner.Unpin()
	var mechOidPtr C.gss_OID
	if mechOidDesc.length > 0 {
		mechOidPtr = &mechOidDesc
	}

	routine := routineErrorCode(major)
	err.Messages = append(err.Messages, displayStatusMessages(routine, C.GSS_C_GSS_CODE, nil)...)
	err.Messages = append(err.Messages, displayStatusMessages(minor, C.GSS_C_MECH_CODE, mechOidPtr)...)

	return err
}
