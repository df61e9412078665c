// SPDX-License-Identifier: Apache-2.0

package gssnative

/*
#cgo LDFLAGS: -lgssapi_krb5
#include <gssapi.h>
*/
import "C"

import "runtime"

// Name wraps a gss_name_t. It must be released with Release once no longer
// needed; it is not safe for concurrent use.
type Name struct {
	id C.gss_name_t
}

// ImportName implements GSS_Import_name (RFC 2743 §2.4.2), turning a
// human-readable name string of the given syntax into an internal name the
// mechanism can use, e.g. to acquire a credential for it.
func ImportName(name string, nt NameType) (*Name, error) {
	nameBytes := []byte(name)
	buf, bufPinner := cBuffer(nameBytes)
	defer bufPinner.Unpin()

	oidDesc, oidPinner := cOid(nt.Oid())
	defer oidPinner.Unpin()

	var gssName C.gss_name_t
	var minor C.OM_uint32
	major := C.gss_import_name(&minor, &buf, &oidDesc, &gssName)
	if major != C.GSS_S_COMPLETE {
		return nil, makeStatus("gss_import_name", major, minor, MechKRB5)
	}

	n := &Name{id: gssName}
	runtime.SetFinalizer(n, (*Name).Release)
	return n, nil
}

// Display implements GSS_Display_name (RFC 2743 §2.4.4).
func (n *Name) Display() (string, error) {
	if n.id == nil {
		return "", nil
	}
	var buf C.gss_buffer_desc
	var minor C.OM_uint32
	major := C.gss_display_name(&minor, n.id, &buf, nil)
	if major != C.GSS_S_COMPLETE {
		return "", makeStatus("gss_display_name", major, minor, MechKRB5)
	}
	defer releaseBuffer(&buf)
	return string(goBytes(buf)), nil
}

// Release implements GSS_Release_name (RFC 2743 §2.4.6). Safe to call more
// than once.
func (n *Name) Release() error {
	if n.id == nil {
		return nil
	}
	var minor C.OM_uint32
	major := C.gss_release_name(&minor, &n.id)
	runtime.SetFinalizer(n, nil)
	n.id = nil
	if major != C.GSS_S_COMPLETE {
		return makeStatus("gss_release_name", major, minor, MechKRB5)
	}
	return nil
}
