// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ktosiek/spnego-proxy/internal/config"
)

func TestLoggerGatesByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Warn, config.TimestampOff)

	l.Infof("should not appear")
	l.Warnf("should appear: %d", 42)
	l.Errorf("errors always appear")

	out := buf.String()
	assert.False(t, strings.Contains(out, "should not appear"))
	assert.True(t, strings.Contains(out, "should appear: 42"))
	assert.True(t, strings.Contains(out, "errors always appear"))
}

func TestNilLoggerStdLoggerDoesNotPanic(t *testing.T) {
	var l *Logger
	std := l.StdLogger()
	assert.NotNil(t, std)
	std.Printf("discarded")
}

func TestStdLoggerGatedBelowErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Warn, config.TimestampOff)

	l.StdLogger().Printf("should be discarded, level is below Error")
	assert.Empty(t, buf.String())
}

func TestStdLoggerPassesThroughAtErrorLevelAndAbove(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Error, config.TimestampOff)

	l.StdLogger().Printf("should appear")
	assert.Contains(t, buf.String(), "should appear")
}
