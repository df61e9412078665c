// SPDX-License-Identifier: Apache-2.0

package gssnative

/*
#cgo LDFLAGS: -lgssapi_krb5
#include <gssapi.h>
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// cBuffer builds a borrowed gss_buffer_desc over b. The returned pinner must
// be kept alive (and Unpinned) for as long as the C call using the buffer is
// in flight; b itself is never copied or freed by this package.
func cBuffer(b []byte) (C.gss_buffer_desc, *runtime.Pinner) {
	var buf C.gss_buffer_desc
	p := &runtime.Pinner{}
	buf.length = C.size_t(len(b))
	if len(b) > 0 {
		p.Pin(&b[0])
		buf.value = unsafe.Pointer(&b[0])
	}
	return buf, p
}

// goBytes copies a gss_buffer_desc's contents into a new Go []byte. It does
// not release the native buffer; callers own that via gss_release_buffer.
func goBytes(buf C.gss_buffer_desc) []byte {
	if buf.length == 0 || buf.value == nil {
		return nil
	}
	return C.GoBytes(buf.value, C.int(buf.length))
}

// releaseBuffer calls gss_release_buffer, ignoring the minor status: by the
// time we're cleaning up there is nothing more useful to do with it than log
// on the caller's side, which callers do if they care.
func releaseBuffer(buf *C.gss_buffer_desc) {
	var minor C.OM_uint32
	C.gss_release_buffer(&minor, buf)
}

// cOid builds a borrowed gss_OID_desc over a DER-encoded OID.
func cOid(oid Oid) (C.gss_OID_desc, *runtime.Pinner) {
	var desc C.gss_OID_desc
	p := &runtime.Pinner{}
	desc.length = C.OM_uint32(len(oid))
	if len(oid) > 0 {
		p.Pin(&oid[0])
		desc.elements = unsafe.Pointer(&oid[0])
	}
	return desc, p
}

// goOid copies a gss_OID's bytes into a Go Oid.
func goOid(oid C.gss_OID) Oid {
	if oid == nil || oid.length == 0 {
		return nil
	}
	return Oid(C.GoBytes(oid.elements, C.int(oid.length)))
}
