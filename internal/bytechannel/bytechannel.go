// Package bytechannel implements the single-consumer, multi-producer byte
// queue syscalls 5, 8, and 12 read from. Producers (keyboard input, pasted
// text) append bytes at any time; at most one consumer reads at a time and
// suspends when the queue is empty.
package bytechannel

import "sync"

// Disposition is what a Predicate wants done with the byte it was just
// shown. Modeled as its own type so ReadUntil predicates are objects that
// own their accumulator rather than closures capturing outer state, which
// keeps the suspend/resume lifecycle explicit.
type Disposition int

const (
	// ConsumeAndContinue removes the byte and asks for the next one.
	ConsumeAndContinue Disposition = iota
	// ConsumeAndStop removes the byte and ends the read.
	ConsumeAndStop
	// IgnoreAndStop leaves the byte in the channel and ends the read.
	IgnoreAndStop
)

// Predicate inspects bytes one at a time during ReadUntil.
type Predicate interface {
	Consider(b byte) Disposition
}

// PredicateFunc adapts a function to a Predicate for stateless cases.
type PredicateFunc func(b byte) Disposition

func (f PredicateFunc) Consider(b byte) Disposition { return f(b) }

// Channel is an unbounded FIFO of bytes with a suspendable single-waiter
// consumer. Create one with New; the zero Channel has no condition variable
// and is not usable.
type Channel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []byte
	closed bool
}

func New() *Channel {
	c := &Channel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Write appends producer bytes and wakes a suspended reader.
func (c *Channel) Write(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = append(c.buf, data...)
	c.cond.Broadcast()
}

// Close marks the channel aborted: any blocked or future Read/ReadUntil call
// that finds no buffered byte resolves as aborted immediately. Bytes already
// buffered are still delivered.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cond.Broadcast()
}

// waitForData blocks until there is at least one byte buffered, the channel
// closes, or cancel fires. It reports false when the wait ended without any
// data becoming available (closed or cancelled).
//
// cancel may be nil, meaning "never fires".
func (c *Channel) waitForData(cancel <-chan struct{}) bool {
	if cancel == nil {
		c.mu.Lock()
		for len(c.buf) == 0 && !c.closed {
			c.cond.Wait()
		}
		ok := len(c.buf) > 0
		c.mu.Unlock()
		return ok
	}

	// sync.Cond has no cancellable wait, so when a cancel channel is in
	// play we poll a woken goroutine against it instead of blocking
	// directly on the cond variable forever.
	woken := make(chan struct{})
	stopped := false // guarded by c.mu
	go func() {
		c.mu.Lock()
		for len(c.buf) == 0 && !c.closed && !stopped {
			c.cond.Wait()
		}
		c.mu.Unlock()
		close(woken)
	}()

	select {
	case <-woken:
		c.mu.Lock()
		ok := len(c.buf) > 0
		c.mu.Unlock()
		return ok
	case <-cancel:
		// Stop and wake the helper goroutine so it doesn't leak even if no
		// Close or Write ever comes.
		c.mu.Lock()
		stopped = true
		c.mu.Unlock()
		c.cond.Broadcast()
		return false
	}
}

// Read returns up to n bytes, suspending until at least one byte is
// available or the channel closes/cancel fires. ok is false on abort.
// Fewer than n bytes may be returned if that's all that's buffered when
// woken.
func (c *Channel) Read(n int, cancel <-chan struct{}) (data []byte, ok bool) {
	if !c.waitForData(cancel) {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	take := n
	if take > len(c.buf) {
		take = len(c.buf)
	}
	data = append([]byte(nil), c.buf[:take]...)
	c.buf = c.buf[take:]
	return data, true
}

// ReadUntil repeatedly peeks the next buffered byte and asks pred what to do
// with it, suspending whenever the channel is empty. ok is false on abort.
func (c *Channel) ReadUntil(pred Predicate, cancel <-chan struct{}) (ok bool) {
	for {
		if !c.waitForData(cancel) {
			return false
		}

		c.mu.Lock()
		if len(c.buf) == 0 {
			// Woken by Close with nothing buffered.
			c.mu.Unlock()
			return false
		}
		b := c.buf[0]
		disposition := pred.Consider(b)

		switch disposition {
		case ConsumeAndContinue:
			c.buf = c.buf[1:]
			c.mu.Unlock()
			continue
		case ConsumeAndStop:
			c.buf = c.buf[1:]
			c.mu.Unlock()
			return true
		case IgnoreAndStop:
			c.mu.Unlock()
			return true
		default:
			c.mu.Unlock()
			return true
		}
	}
}
