// SPDX-License-Identifier: Apache-2.0

package acceptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppTokenBase64Empty(t *testing.T) {
	var tok AppToken
	assert.Equal(t, "", tok.Base64())
}

func TestAppTokenBase64Encoding(t *testing.T) {
	tok := AppToken([]byte{0x01, 0x02, 0xff})
	b64 := tok.Base64()
	assert.NotEmpty(t, b64)
	assert.Equal(t, "AQL/", b64)
}
