// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	st, err := Parse([]string{"--backend", "http://origin.example.org:8080"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:80", st.Bind)
	assert.False(t, st.Insecure)
	assert.Equal(t, VerbosityOff, st.Verbosity)
	assert.Equal(t, TimestampSec, st.LogTimestamp)
	assert.Equal(t, "origin.example.org:8080", st.BackendURL.Host)
	assert.Empty(t, st.ServicePrincipal)
}

func TestParseServicePrincipal(t *testing.T) {
	st, err := Parse([]string{"--backend", "http://origin.example.org", "--service-principal", "HTTP@proxy.example.org"})
	require.NoError(t, err)
	assert.Equal(t, "HTTP@proxy.example.org", st.ServicePrincipal)
}

func TestParseRepeatedVIncrementsVerbosity(t *testing.T) {
	st, err := Parse([]string{"--backend", "http://origin.example.org", "-v", "-v", "-v"})
	require.NoError(t, err)
	assert.Equal(t, VerbosityInfo, st.Verbosity)
}

func TestParseMissingBackendIsConfigError(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestParseInvalidBackendScheme(t *testing.T) {
	_, err := Parse([]string{"--backend", "ftp://origin.example.org"})
	assert.Error(t, err)
}

func TestParseInvalidLogTimestamp(t *testing.T) {
	_, err := Parse([]string{"--backend", "http://origin.example.org", "--log-timestamp", "bogus"})
	assert.Error(t, err)
}
