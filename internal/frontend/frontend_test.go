// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ktosiek/spnego-proxy/internal/authhandler"
)

func TestNewWiresConnContextAndConnState(t *testing.T) {
	h := &authhandler.Handler{}
	srv := New("127.0.0.1:0", h, nil)

	assert.NotNil(t, srv.Server.ConnContext)
	assert.NotNil(t, srv.Server.ConnState)

	mux, ok := srv.Server.Handler.(*http.ServeMux)
	assert.True(t, ok)
	assert.NotNil(t, mux)
}
