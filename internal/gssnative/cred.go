// SPDX-License-Identifier: Apache-2.0

package gssnative

/*
#cgo LDFLAGS: -lgssapi_krb5
#include <gssapi.h>
*/
import "C"

import (
	"runtime"
	"time"
	"unsafe"
)

// Credential wraps a gss_cred_id_t. Its only use in this package is as an
// acceptor credential handed to SecContext.Accept.
type Credential struct {
	id C.gss_cred_id_t
}

// AcquireCredential implements GSS_Acquire_cred (RFC 2743 §2.1.1) for
// acceptor usage: name identifies the service principal this proxy
// authenticates as (typically imported via NTHostBasedService, e.g.
// "HTTP@proxy.example.org"), and mechs restricts the credential to the
// listed mechanisms (nil/empty means the default mechanism set).
//
// A nil name acquires the default credential for the current process,
// which is how gss_acquire_cred is used when no explicit service principal
// is configured: the mechanism decides based on ambient credentials
// (keytab entries, ccache) what identity to present.
func AcquireCredential(name *Name, mechs []GssMech, lifetime time.Duration) (*Credential, error) {
	var desiredName C.gss_name_t
	if name != nil {
		desiredName = name.id
	}

	var mechSet C.gss_OID_set
	if len(mechs) > 0 {
		var minor C.OM_uint32
		if major := C.gss_create_empty_oid_set(&minor, &mechSet); major != C.GSS_S_COMPLETE {
			return nil, makeStatus("gss_create_empty_oid_set", major, minor, MechKRB5)
		}
		defer func() {
			var m C.OM_uint32
			C.gss_release_oid_set(&m, &mechSet)
		}()
		pinner := &runtime.Pinner{}
		defer pinner.Unpin()
		for _, mech := range mechs {
			oid := mech.Oid()
			if len(oid) == 0 {
				continue
			}
			pinner.Pin(&oid[0])
			oidDesc := C.gss_OID_desc{length: C.OM_uint32(len(oid)), elements: unsafe.Pointer(&oid[0])}
			var minor C.OM_uint32
			if major := C.gss_add_oid_set_member(&minor, &oidDesc, &mechSet); major != C.GSS_S_COMPLETE {
				return nil, makeStatus("gss_add_oid_set_member", major, minor, mech)
			}
		}
	}

	lifetimeSecs := C.OM_uint32(C.GSS_C_INDEFINITE)
	if lifetime > 0 {
		lifetimeSecs = C.OM_uint32(lifetime / time.Second)
	}

	var credID C.gss_cred_id_t
	var minor C.OM_uint32
	major := C.gss_acquire_cred(&minor, desiredName, lifetimeSecs, mechSet, C.GSS_C_ACCEPT, &credID, nil, nil)
	if major != C.GSS_S_COMPLETE {
		return nil, makeStatus("gss_acquire_cred", major, minor, MechKRB5)
	}

	c := &Credential{id: credID}
	runtime.SetFinalizer(c, (*Credential).Release)
	return c, nil
}

// Release implements GSS_Release_cred (RFC 2743 §2.1.2). Safe to call more
// than once.
func (c *Credential) Release() error {
	if c.id == nil {
		return nil
	}
	var minor C.OM_uint32
	major := C.gss_release_cred(&minor, &c.id)
	runtime.SetFinalizer(c, nil)
	c.id = nil
	if major != C.GSS_S_COMPLETE {
		return makeStatus("gss_release_cred", major, minor, MechKRB5)
	}
	return nil
}
