package hostsys

import (
	"context"
	"fmt"
	"time"

	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// printBufferTime is the pause after a console write that lets the console
// UI flush before the guest resumes (syscalls 1, 4, 11, 34, 35, 36).
const printBufferTime = 5 * time.Millisecond

// ctxFromDone adapts a cancellation channel (as returned by cancel.Token's
// Done) into a context.Context so TimeHandler.SleepFor, which takes a
// context the way wazero's blocking calls do, can be interrupted by the
// same signal with_cancel races everything else against. The returned
// cancel func must be called once the context is no longer needed.
func ctxFromDone(done <-chan struct{}) (context.Context, context.CancelFunc) {
	ctx, cancelFn := context.WithCancel(context.Background())
	if done == nil {
		return ctx, cancelFn
	}
	go func() {
		select {
		case <-done:
			cancelFn()
		case <-ctx.Done():
		}
	}()
	return ctx, cancelFn
}

// sendPrint writes text to the console and then sleeps printBufferTime,
// matching SyscallDelegate::send_print.
func (s *State) sendPrint(text string, isError bool) {
	if s.console != nil {
		s.console.Print(text, isError)
	}
	if s.time == nil {
		return
	}
	ctx, cancelFn := ctxFromDone(s.cancelToken.Done())
	defer cancelFn()
	s.time.SleepFor(ctx, printBufferTime)
}

func a0(ex api.Executor) uint32 {
	var v uint32
	ex.WithRegisters(func(r api.Registers) { v = r.Get(api.A0) })
	return v
}

func (s *State) printInt(ex api.Executor) result.Result {
	value := int32(a0(ex))
	s.sendPrint(fmt.Sprintf("%d", value), false)
	return result.OK()
}

func (s *State) printChar(ex api.Executor) result.Result {
	c := byte(a0(ex))
	s.sendPrint(string(rune(c)), false)
	return result.OK()
}

// printHex and printBin print the raw two's-complement bit pattern of $a0,
// not a signed magnitude with a minus sign. Formatting the uint32 directly,
// rather than casting to int32 first (which would make Go's %x print a
// leading "-"), is what gives the unsigned bit-pattern form.
func (s *State) printHex(ex api.Executor) result.Result {
	s.sendPrint(fmt.Sprintf("%x", a0(ex)), false)
	return result.OK()
}

func (s *State) printBin(ex api.Executor) result.Result {
	s.sendPrint(fmt.Sprintf("%b", a0(ex)), false)
	return result.OK()
}

func (s *State) printUnsigned(ex api.Executor) result.Result {
	s.sendPrint(fmt.Sprintf("%d", a0(ex)), false)
	return result.OK()
}

func (s *State) printString(ex api.Executor) result.Result {
	address := a0(ex)

	var text string
	err := ex.WithMemory(func(m api.Memory) error {
		var ferr error
		text, ferr = grabString(address, m, 1000)
		return ferr
	})
	if err != nil {
		return result.Fault(err)
	}

	s.sendPrint(text, false)
	return result.OK()
}
