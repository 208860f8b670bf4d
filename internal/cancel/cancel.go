// Package cancel implements the one-shot cancellation signal that lets an
// outer controller abort an in-flight syscall, a close-once channel standing
// in for a oneshot channel selected against the handler's future.
package cancel

import (
	"sync"

	"github.com/saturnsim/core/result"
)

// Token is armed once per syscall and fired at most once. The zero Token is
// unarmed (neither Cancelled nor Armed).
type Token struct {
	mu        sync.Mutex
	cancelled bool
	done      chan struct{} // non-nil while Armed
}

// Arm installs a fresh one-shot channel unless the token is already
// Cancelled, in which case Arm reports false and the caller should return
// Aborted immediately without running its handler.
func (t *Token) Arm() (ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancelled {
		return false
	}
	t.done = make(chan struct{})
	return true
}

// Release clears the armed channel once the syscall it was guarding has
// finished, whether or not it was cancelled.
func (t *Token) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done = nil
}

// Fire cancels the token. If a syscall is currently armed, its Done channel
// is closed, waking anything selecting on it. Fire is idempotent: firing an
// already-cancelled token is a no-op.
func (t *Token) Fire() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancelled {
		return
	}
	t.cancelled = true
	if t.done != nil {
		close(t.done)
	}
}

// Clear resets the token to unarmed/uncancelled so the next run may proceed.
func (t *Token) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = false
	t.done = nil
}

// doneChan returns the channel armed by the most recent Arm call, or nil.
func (t *Token) doneChan() chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Run arms t, executes f on a separate goroutine, and races its result
// against the token firing. If the token fires first, Run returns Aborted
// and leaves f running in the background (f is expected to notice ctx
// cancellation on its own via whatever blocking primitives it used; every
// blocking primitive in this module accepts the token's Done channel for
// exactly this reason). If t is already Cancelled, Run returns Aborted
// without calling f at all.
func (t *Token) Run(f func() result.Result) result.Result {
	if !t.Arm() {
		return result.Cancelled()
	}
	defer t.Release()

	done := t.doneChan()
	resultCh := make(chan result.Result, 1)
	go func() {
		resultCh <- f()
	}()

	select {
	case r := <-resultCh:
		return r
	case <-done:
		return result.Cancelled()
	}
}

// Done returns the channel that closes when the currently-armed syscall is
// cancelled, or nil if nothing is armed. Blocking primitives select on this
// to resolve early under cancellation.
func (t *Token) Done() <-chan struct{} {
	ch := t.doneChan()
	if ch == nil {
		return nil
	}
	return ch
}
