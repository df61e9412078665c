// SPDX-License-Identifier: Apache-2.0

// Command spnego-proxy is a reverse HTTP proxy that terminates SPNEGO /
// GSS-API Negotiate authentication on behalf of a backend origin server.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/ktosiek/spnego-proxy/internal/authhandler"
	"github.com/ktosiek/spnego-proxy/internal/backendproxy"
	"github.com/ktosiek/spnego-proxy/internal/config"
	"github.com/ktosiek/spnego-proxy/internal/frontend"
	"github.com/ktosiek/spnego-proxy/internal/gssnative"
	"github.com/ktosiek/spnego-proxy/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	state, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logging.Default(state.Verbosity, state.LogTimestamp)

	proxy := backendproxy.New(state.BackendURL, state.Insecure, logger)
	handler := &authhandler.Handler{Proxy: proxy, Logger: logger}

	cred, err := acceptorCredential(state.ServicePrincipal)
	if err != nil {
		logger.Errorf("acquiring acceptor credential for %q: %v", state.ServicePrincipal, err)
		return 1
	}
	if cred != nil {
		defer cred.Release()
	}

	srv := frontend.New(state.Bind, handler, cred)

	logger.Infof("listening on %s, proxying to %s", state.Bind, state.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("server stopped: %v", err)
		return 1
	}

	return 0
}

// acceptorCredential acquires a GSS acceptor credential for the configured
// service principal. An empty principal returns a nil credential, which
// tells gssnative to use the mechanism's default acceptor credential,
// resolved from the process's ambient environment (e.g. a keytab on
// KRB5_KTNAME).
func acceptorCredential(servicePrincipal string) (*gssnative.Credential, error) {
	if servicePrincipal == "" {
		return nil, nil
	}
	name, err := gssnative.ImportName(servicePrincipal, gssnative.NTHostBasedService)
	if err != nil {
		return nil, fmt.Errorf("importing service principal name: %w", err)
	}
	defer name.Release()

	cred, err := gssnative.AcquireCredential(name, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("acquiring credential: %w", err)
	}
	return cred, nil
}
