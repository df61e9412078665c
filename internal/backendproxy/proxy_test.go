// SPDX-License-Identifier: Apache-2.0

package backendproxy

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
)

func TestForwardRelaysResponseAndHeadersIdentically(t *testing.T) {
	var gotXCustom string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotXCustom = r.Header.Get("X-Custom")
		w.Header().Set("X-From-Backend", "yes")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hello"))
	}))
	defer backend.Close()

	backendURL, err := url.Parse(backend.URL)
	require.NoError(t, err)

	p := New(backendURL, false, nil)
	r := httptest.NewRequest(http.MethodGet, "/path?x=1", nil)
	r.Header.Set("X-Custom", "client-value")
	w := httptest.NewRecorder()

	p.Forward(w, r, acceptor.PrincipalName("alice@EXAMPLE"), "")

	assert.Equal(t, "client-value", gotXCustom)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "yes", w.Header().Get("X-From-Backend"))
	assert.Equal(t, "hello", w.Body.String())
}

func TestForwardSetsMutualAuthHeaderOnlyWhenPresent(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	backendURL, err := url.Parse(backend.URL)
	require.NoError(t, err)
	p := New(backendURL, false, nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	p.Forward(w, r, acceptor.PrincipalName("bob@EXAMPLE"), "dG9rZW4=")
	assert.Equal(t, "Negotiate dG9rZW4=", w.Header().Get("WWW-Authenticate"))

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	w2 := httptest.NewRecorder()
	p.Forward(w2, r2, acceptor.PrincipalName("bob@EXAMPLE"), "")
	assert.Empty(t, w2.Header().Get("WWW-Authenticate"))
}

func TestForwardBackendDownReturns500(t *testing.T) {
	backendURL, err := url.Parse("http://127.0.0.1:1")
	require.NoError(t, err)
	p := New(backendURL, false, nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	p.Forward(w, r, acceptor.PrincipalName("x"), "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error\n", w.Body.String())
}
