// SPDX-License-Identifier: Apache-2.0

package gssnative

// Oid is a DER-encoded object identifier, the byte representation a
// gss_OID_desc expects for its elements field.
type Oid []byte

// GssMech identifies a GSSAPI security mechanism by its registered OID.
// Only the mechanisms this proxy is expected to negotiate are named here;
// the acceptor otherwise treats mechanisms opaquely.
type GssMech int

const (
	MechKRB5 GssMech = iota
	MechSPNEGO
	MechIAKERB
)

var mechOids = map[GssMech]struct {
	oid  Oid
	name string
}{
	// 1.2.840.113554.1.2.2
	MechKRB5: {Oid{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x02}, "KRB5"},
	// 1.3.6.1.5.5.2
	MechSPNEGO: {Oid{0x2b, 0x06, 0x01, 0x05, 0x05, 0x02}, "SPNEGO"},
	// 1.3.6.1.5.2.5
	MechIAKERB: {Oid{0x2b, 0x06, 0x01, 0x05, 0x02, 0x05}, "IAKERB"},
}

func (m GssMech) Oid() Oid { return mechOids[m].oid }

func (m GssMech) String() string {
	if e, ok := mechOids[m]; ok {
		return e.name
	}
	return "UNKNOWN_MECH"
}

// mechFromOid maps a raw mechanism OID, as returned by gss_accept_sec_context,
// back to a GssMech. An OID not in the table yields (0, false) rather than
// failing the handshake: the acceptor doesn't need to recognize the
// mechanism to finish accepting a context under it.
func mechFromOid(oid Oid) (GssMech, bool) {
	for m, e := range mechOids {
		if oidEqual(e.oid, oid) {
			return m, true
		}
	}
	return 0, false
}

func oidEqual(a, b Oid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NameType identifies the syntax of a principal name passed to ImportName.
// Only GSS_KRB5_NT_PRINCIPAL_NAME and the hostbased-service form are used by
// this proxy (importing its own acceptor identity); see RFC 2743 §4.
type NameType int

const (
	NTHostBasedService NameType = iota
	NTKRB5PrincipalName
)

var nameTypeOids = map[NameType]Oid{
	// 1.2.840.113554.1.2.1.4
	NTHostBasedService: {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x01, 0x04},
	// 1.2.840.113554.1.2.2.1
	NTKRB5PrincipalName: {0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x02, 0x01},
}

func (nt NameType) Oid() Oid { return nameTypeOids[nt] }

// CredUsage mirrors RFC 2743's gss_cred_usage_t.
type CredUsage int

const (
	CredAcceptOnly CredUsage = iota
	CredInitiateOnly
	CredInitiateAndAccept
)
