// SPDX-License-Identifier: Apache-2.0

// Package backendproxy forwards an authenticated request to the configured
// origin server and relays its response, attaching the mutual-auth token
// (if any) to the response the client sees.
package backendproxy

import (
	"crypto/tls"
	"io"
	"net/http"
	"net/url"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
	"github.com/ktosiek/spnego-proxy/internal/logging"
)

// Proxy forwards requests to one backend base URI over a shared,
// connection-pooling http.Client, wrapping http.DefaultTransport rather
// than rolling its own connection management.
type Proxy struct {
	Backend *url.URL
	Client  *http.Client
	Logger  *logging.Logger
}

// New builds a Proxy targeting backend. If insecure is true the backend's
// TLS certificate is never validated; that is a deliberate single toggle,
// not a general TLS policy.
func New(backend *url.URL, insecure bool, logger *logging.Logger) *Proxy {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
	}
	return &Proxy{
		Backend: backend,
		Client:  &http.Client{Transport: transport},
		Logger:  logger,
	}
}

func (p *Proxy) errorf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Errorf(format, args...)
	}
}

func (p *Proxy) warnf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Warnf(format, args...)
	}
}

// Forward implements authhandler.Proxy. It builds a new request targeting
// Backend with the same method, path+query, headers and body as r, issues
// it, and relays the response back to w. Headers are forwarded unmodified:
// downstream identity propagation to the backend is left to the caller,
// since this system doesn't define a header for it. Backend transport
// errors become a generic 500; the mechanism/transport diagnostic is
// logged, never sent to the client. principal is accepted for logging only.
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request, principal acceptor.PrincipalName, mutualAuth string) {
	target := *p.Backend
	target.Path = singleJoiningSlash(p.Backend.Path, r.URL.Path)
	target.RawQuery = r.URL.RawQuery

	outReq, err := http.NewRequest(r.Method, target.String(), r.Body)
	if err != nil {
		p.errorf("backendproxy: building request: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	outReq.Header = r.Header.Clone()
	outReq.ContentLength = r.ContentLength
	outReq.Proto = "HTTP/1.1"
	outReq.ProtoMajor = 1
	outReq.ProtoMinor = 1

	resp, err := p.Client.Do(outReq)
	if err != nil {
		p.errorf("backendproxy: request to backend failed for principal %q: %v", principal, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	if mutualAuth != "" {
		w.Header().Set("WWW-Authenticate", "Negotiate "+mutualAuth)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.warnf("backendproxy: copying response body: %v", err)
	}
}

func singleJoiningSlash(a, b string) string {
	aSlash := len(a) > 0 && a[len(a)-1] == '/'
	bSlash := len(b) > 0 && b[0] == '/'
	switch {
	case aSlash && bSlash:
		return a + b[1:]
	case !aSlash && !bSlash:
		return a + "/" + b
	default:
		return a + b
	}
}
