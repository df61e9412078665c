// SPDX-License-Identifier: Apache-2.0

// Package config parses the process-wide AppState from command-line flags
// using the standard library flag package, no third-party CLI framework.
package config

import (
	"flag"
	"fmt"
	"net/url"
)

// Verbosity is a cumulative logging level, set by repeating -v on the
// command line: off, error, warn, info, debug, trace.
type Verbosity int

const (
	VerbosityOff Verbosity = iota
	VerbosityError
	VerbosityWarn
	VerbosityInfo
	VerbosityDebug
	VerbosityTrace
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityOff:
		return "off"
	case VerbosityError:
		return "error"
	case VerbosityWarn:
		return "warn"
	case VerbosityInfo:
		return "info"
	case VerbosityDebug:
		return "debug"
	case VerbosityTrace:
		return "trace"
	default:
		return "trace"
	}
}

// verbosityFlag implements flag.Value as a repeat counter: each -v
// occurrence increments the level by one, capped at VerbosityTrace.
type verbosityFlag struct{ v *Verbosity }

func (f verbosityFlag) String() string {
	if f.v == nil {
		return VerbosityOff.String()
	}
	return f.v.String()
}

func (f verbosityFlag) Set(string) error {
	if *f.v < VerbosityTrace {
		*f.v++
	}
	return nil
}

func (f verbosityFlag) IsBoolFlag() bool { return true }

// TimestampGranularity controls how log timestamps are rendered, per
// --log-timestamp.
type TimestampGranularity int

const (
	TimestampOff TimestampGranularity = iota
	TimestampSec
	TimestampMs
	TimestampNs
)

func parseTimestampGranularity(s string) (TimestampGranularity, error) {
	switch s {
	case "off":
		return TimestampOff, nil
	case "sec":
		return TimestampSec, nil
	case "ms":
		return TimestampMs, nil
	case "ns":
		return TimestampNs, nil
	default:
		return 0, fmt.Errorf("invalid --log-timestamp value %q: want one of off, sec, ms, ns", s)
	}
}

// AppState is the process-wide, read-only-after-init configuration shared
// by every Session. BackendURL is a derived field, not a flag itself.
type AppState struct {
	Bind             string
	Backend          string
	BackendURL       *url.URL
	Insecure         bool
	Verbosity        Verbosity
	LogTimestamp     TimestampGranularity
	ServicePrincipal string
}

// Parse parses args (typically os.Args[1:]) into an AppState. A non-nil
// error here is a configuration error: fatal at startup. Parse itself just
// returns the error; main.go decides how to report it and exit.
func Parse(args []string) (*AppState, error) {
	fs := flag.NewFlagSet("spnego-proxy", flag.ContinueOnError)

	bind := fs.String("bind", "0.0.0.0:80", "listen address")
	backend := fs.String("backend", "", "backend base URI")
	insecure := fs.Bool("insecure", false, "accept any backend TLS certificate")
	logTimestamp := fs.String("log-timestamp", "sec", "log timestamp granularity: off, sec, ms, ns")
	servicePrincipal := fs.String("service-principal", "", "host-based service name to acquire an acceptor credential for (e.g. HTTP@proxy.example.org); empty uses the mechanism's default credential")

	state := &AppState{}
	fs.Var(verbosityFlag{&state.Verbosity}, "v", "increase verbosity (repeatable)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *backend == "" {
		return nil, fmt.Errorf("--backend is required")
	}
	backendURL, err := url.Parse(*backend)
	if err != nil {
		return nil, fmt.Errorf("invalid --backend %q: %w", *backend, err)
	}
	if backendURL.Scheme != "http" && backendURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid --backend %q: scheme must be http or https", *backend)
	}

	ts, err := parseTimestampGranularity(*logTimestamp)
	if err != nil {
		return nil, err
	}

	state.Bind = *bind
	state.Backend = *backend
	state.BackendURL = backendURL
	state.Insecure = *insecure
	state.LogTimestamp = ts
	state.ServicePrincipal = *servicePrincipal

	return state, nil
}
