// SPDX-License-Identifier: Apache-2.0

package gssnative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMechFromOid(t *testing.T) {
	mech, ok := mechFromOid(MechSPNEGO.Oid())
	assert.True(t, ok)
	assert.Equal(t, MechSPNEGO, mech)

	_, ok = mechFromOid(Oid{0x01, 0x02, 0x03})
	assert.False(t, ok)
}

func TestMechString(t *testing.T) {
	assert.Equal(t, "KRB5", MechKRB5.String())
	assert.Equal(t, "SPNEGO", MechSPNEGO.String())
}

func TestOidEqual(t *testing.T) {
	assert.True(t, oidEqual(Oid{1, 2, 3}, Oid{1, 2, 3}))
	assert.False(t, oidEqual(Oid{1, 2, 3}, Oid{1, 2}))
	assert.False(t, oidEqual(Oid{1, 2, 3}, Oid{1, 2, 4}))
}
