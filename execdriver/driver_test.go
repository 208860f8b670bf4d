package execdriver_test

import (
	"testing"

	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/execdriver"
	"github.com/saturnsim/core/internal/testing/require"
	"github.com/saturnsim/core/result"
)

type stubRegisters struct{ line [32]uint32 }

func (r *stubRegisters) Get(i int) uint32    { return r.line[i] }
func (r *stubRegisters) Set(i int, v uint32) { r.line[i] = v }

type stubMemory struct{}

func (stubMemory) Get(uint32) (byte, error) { return 0, nil }
func (stubMemory) Set(uint32, byte) error   { return nil }

// stubExecutor plays back a scripted sequence of frames: each call to Run
// returns the next frame in the script and advances; Frame returns the frame
// at the current script position, which after a Run is the next one to be
// handed out (the last one once the script is exhausted). RunBatched is independently
// configurable since batch tests only need a single Frame() read.
type stubExecutor struct {
	regs        *stubRegisters
	frames      []api.DebugFrame
	i           int
	handled     int
	batchResult bool
}

func (e *stubExecutor) WithRegisters(f func(api.Registers)) { f(e.regs) }
func (e *stubExecutor) WithMemory(f func(api.Memory) error) error {
	return f(stubMemory{})
}
func (e *stubExecutor) Frame() api.DebugFrame { return e.frames[e.i] }
func (e *stubExecutor) SyscallHandled()       { e.handled++ }
func (e *stubExecutor) Run(bool) api.DebugFrame {
	f := e.frames[e.i]
	if e.i < len(e.frames)-1 {
		e.i++
	}
	return f
}
func (e *stubExecutor) RunBatched(int, bool, bool) bool { return e.batchResult }

// stubDispatcher returns results from a script, one per call, holding at
// the last entry once exhausted.
type stubDispatcher struct {
	results []result.Result
	i       int
	calls   int
}

func (d *stubDispatcher) Dispatch(api.Executor, uint32) result.Result {
	d.calls++
	r := d.results[d.i]
	if d.i < len(d.results)-1 {
		d.i++
	}
	return r
}

func TestRunStopsOnNonSyscallFault(t *testing.T) {
	ex := &stubExecutor{regs: &stubRegisters{}, frames: []api.DebugFrame{
		{PC: 0x10, Trap: api.TrapFault},
	}}
	d := &stubDispatcher{}
	drv := execdriver.New(ex, d)

	frame, outcome := drv.Run(false)

	require.Equal(t, uint32(0x10), frame.PC)
	require.Nil(t, outcome)
	require.Equal(t, 0, d.calls)
	require.Equal(t, 0, ex.handled)
}

func TestRunRecoversFromCompletedSyscallThenStopsOnTerminate(t *testing.T) {
	ex := &stubExecutor{regs: &stubRegisters{}, frames: []api.DebugFrame{
		{PC: 0x10, Trap: api.TrapSyscall},
		{PC: 0x14, Trap: api.TrapSyscall},
	}}
	d := &stubDispatcher{results: []result.Result{result.OK(), result.Exit(0)}}
	drv := execdriver.New(ex, d)

	frame, outcome := drv.Run(false)

	require.Equal(t, uint32(0x14), frame.PC)
	require.Equal(t, result.Terminated, outcome.Kind)
	require.Equal(t, 1, ex.handled) // only the Completed result marked handled
}

func TestRunBatchReturnsNilOnUninterruptedBatch(t *testing.T) {
	ex := &stubExecutor{regs: &stubRegisters{}, frames: []api.DebugFrame{{}}, batchResult: false}
	d := &stubDispatcher{}
	drv := execdriver.New(ex, d)

	frame, outcome := drv.RunBatch(100, false, true)

	require.Nil(t, frame)
	require.Nil(t, outcome)
}

func TestRunBatchSyscallAlwaysInterruptsEvenOnCompleted(t *testing.T) {
	ex := &stubExecutor{
		regs:        &stubRegisters{},
		frames:      []api.DebugFrame{{PC: 0x10, Trap: api.TrapSyscall}},
		batchResult: true,
	}
	d := &stubDispatcher{results: []result.Result{result.OK()}}
	drv := execdriver.New(ex, d)

	frame, outcome := drv.RunBatch(10, false, false)

	require.Nil(t, frame)
	require.Nil(t, outcome)
	require.Equal(t, 1, ex.handled)
}

func TestRunBatchNonSyscallFaultReturnsFrameWithoutDispatch(t *testing.T) {
	ex := &stubExecutor{
		regs:        &stubRegisters{},
		frames:      []api.DebugFrame{{PC: 0x20, Trap: api.TrapFault}},
		batchResult: true,
	}
	d := &stubDispatcher{}
	drv := execdriver.New(ex, d)

	frame, outcome := drv.RunBatch(10, false, false)

	require.Equal(t, uint32(0x20), frame.PC)
	require.Nil(t, outcome)
	require.Equal(t, 0, d.calls)
}
