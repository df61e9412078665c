// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
	"github.com/ktosiek/spnego-proxy/internal/worker"
)

func TestEstablishReleasesWorker(t *testing.T) {
	sess := New(nil)
	unlock := sess.Lock()
	sess.Establish(acceptor.PrincipalName("alice@EXAMPLE"))
	unlock()

	assert.Equal(t, Established, sess.Phase())
	assert.Equal(t, acceptor.PrincipalName("alice@EXAMPLE"), sess.Principal())
	assert.Nil(t, sess.Worker())
}

func TestConnContextAndFromContext(t *testing.T) {
	// A real Worker needs a native acceptor; nil exercises the
	// stash/retrieve path without one.
	hook := ConnContext(func() *worker.Worker { return nil })

	ctx := hook(context.Background(), &net.TCPConn{})
	sess := FromContext(ctx)
	require.NotNil(t, sess)
	assert.Equal(t, InProgress, sess.Phase())
}

func TestFromContextPanicsWithoutSession(t *testing.T) {
	assert.Panics(t, func() {
		FromContext(context.Background())
	})
}
