// SPDX-License-Identifier: Apache-2.0

// Package worker provides the serialized executor that owns one GSS
// acceptor and bridges its blocking native calls to the event-driven HTTP
// front end via a command/reply channel pair.
package worker

import (
	"sync"

	"github.com/ktosiek/spnego-proxy/internal/acceptor"
)

// acceptorStep is the subset of *acceptor.Acceptor the worker loop needs;
// factored out so the loop can be exercised in tests without a real native
// context.
type acceptorStep interface {
	Accept(inputToken []byte) acceptor.Outcome
	Close() error
}

// command pairs one input token with the reply channel its result goes to.
// reply is always buffered by one: the worker loop never blocks on a
// receiver that has stopped listening (submit cancellation, see Submit).
type command struct {
	token []byte
	reply chan acceptor.Outcome
}

// Worker is a dedicated goroutine owning exactly one acceptor.Acceptor. It
// is the only code that ever touches that Acceptor, satisfying the native
// mechanism's single-threaded-context requirement.
type Worker struct {
	cmds     chan command
	done     chan struct{}
	closeOne sync.Once
}

// New spawns the worker loop and returns a handle to it. The Acceptor's
// native context is created lazily by the first Accept call made from
// inside the loop, not here.
func New(a *acceptor.Acceptor) *Worker {
	return newWithAcceptor(a)
}

func newWithAcceptor(a acceptorStep) *Worker {
	w := &Worker{
		cmds: make(chan command),
		done: make(chan struct{}),
	}
	go w.run(a)
	return w
}

func (w *Worker) run(a acceptorStep) {
	defer close(w.done)
	defer func() {
		if err := a.Close(); err != nil {
			// Resource-release failures are never fatal; they are
			// neither logged nor surfaced past this point.
			_ = err
		}
	}()

	for cmd := range w.cmds {
		outcome := a.Accept(cmd.token)
		select {
		case cmd.reply <- outcome:
		default:
			// The submitter stopped waiting (Submit's context was
			// canceled or its caller moved on); the call already ran to
			// completion and its result is simply discarded.
		}
	}
}

// Submit hands an Accept command for the given token to the worker loop,
// then blocks until the worker has produced a result or ctxDone fires,
// whichever comes first. If ctxDone fires first, the in-flight native call
// still runs to completion inside the worker; only delivery of its result
// is dropped. The hand-off itself does not watch ctxDone: while the worker
// is still running an earlier command, Submit waits for it to finish (or
// for the worker to exit) before the new command is taken.
//
// Submit must never be called concurrently with another Submit on the same
// Worker: FIFO ordering is the caller's (Session's) responsibility to
// enforce, one request at a time.
func (w *Worker) Submit(token []byte, ctxDone <-chan struct{}) (acceptor.Outcome, bool) {
	reply := make(chan acceptor.Outcome, 1)
	cmd := command{token: token, reply: reply}

	select {
	case w.cmds <- cmd:
	case <-w.done:
		return acceptor.Outcome{}, false
	}

	select {
	case outcome := <-reply:
		return outcome, true
	case <-ctxDone:
		return acceptor.Outcome{}, false
	case <-w.done:
		return acceptor.Outcome{}, false
	}
}

// Close closes the command channel, causing the worker loop to exit once
// it has drained any in-flight command. It does not wait for the loop to
// finish; callers that need that guarantee should select on Done().
func (w *Worker) Close() {
	w.closeOne.Do(func() { close(w.cmds) })
}

// Done returns a channel closed once the worker loop has exited and the
// owned Acceptor has been released.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}
