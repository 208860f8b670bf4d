// Package execdriver runs a CPU executor in free-run or batched mode,
// intercepting syscall traps and handing them to a hostsys.State's
// dispatcher before resuming. It is the Go shape of SyscallDelegate's
// run/run_batch pair.
package execdriver

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// Dispatcher is the subset of hostsys.State the driver depends on, kept as
// an interface so the driver can be tested against a fake dispatcher
// without a real executor.
type Dispatcher interface {
	Dispatch(ex api.Executor, code uint32) result.Result
}

// Driver pairs an executor with the dispatcher servicing its syscalls.
type Driver struct {
	Executor   api.Executor
	Dispatcher Dispatcher
}

// New builds a Driver.
func New(ex api.Executor, dispatcher Dispatcher) *Driver {
	return &Driver{Executor: ex, Dispatcher: dispatcher}
}

// handleFrame inspects frame. For a syscall trap it reads $v0, dispatches,
// and on Completed marks the trap handled and reports recovered=true so the
// caller's loop continues. Any other outcome (or a non-syscall frame) stops
// the caller, returning the frame paired with the outcome if one was
// produced.
func (d *Driver) handleFrame(frame api.DebugFrame) (stop *api.DebugFrame, outcome *result.Result, recovered bool) {
	if !frame.IsSyscall() {
		f := frame
		return &f, nil, false
	}

	var code uint32
	d.Executor.WithRegisters(func(r api.Registers) { code = r.Get(api.V0) })

	r := d.Dispatcher.Dispatch(d.Executor, code)

	if r.IsCompleted() {
		d.Executor.SyscallHandled()
		return nil, &r, true
	}

	f := frame
	return &f, &r, false
}

// Run free-runs the executor until it halts for a reason the dispatcher
// can't recover from: any syscall result other than Completed (Failure,
// Terminated, Aborted, Unimplemented, Unknown, Exception), or a non-syscall
// trap. skipFirst is only honored on the first
// iteration, matching the executor's own breakpoint-skip contract.
func (d *Driver) Run(skipFirst bool) (api.DebugFrame, *result.Result) {
	for {
		frame := d.Executor.Run(skipFirst)
		skipFirst = false

		stop, outcome, recovered := d.handleFrame(frame)
		if stop != nil {
			return *stop, outcome
		}
		if !recovered {
			return d.Executor.Frame(), nil
		}
	}
}

// RunBatch runs at most n instructions. A nil frame means the batch ended
// without interruption (the caller should re-enter for the next batch); a
// syscall trap that resolves with Completed also returns a nil frame, since
// a syscall always interrupts the batch even when it recovers, and the
// caller is expected to re-enter rather than treat this like "keep going".
func (d *Driver) RunBatch(n int, skipFirst, allowInterrupt bool) (*api.DebugFrame, *result.Result) {
	if !d.Executor.RunBatched(n, skipFirst, allowInterrupt) {
		return nil, nil
	}

	frame := d.Executor.Frame()
	stop, outcome, recovered := d.handleFrame(frame)
	if stop != nil {
		return stop, outcome
	}
	if !recovered {
		f := d.Executor.Frame()
		return &f, nil
	}
	return nil, nil
}
