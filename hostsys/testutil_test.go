package hostsys

import (
	"context"
	"time"

	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/internal/midi"
)

// fakeRegisters is a flat MIPS o32 register file good enough for dispatch
// tests: 32 general-purpose lines, zero-initialized.
type fakeRegisters struct {
	line [32]uint32
}

func (r *fakeRegisters) Get(index int) uint32    { return r.line[index] }
func (r *fakeRegisters) Set(index int, v uint32) { r.line[index] = v }

// fakeMemory is a sparse byte-addressable guest memory. Reads of
// unpopulated addresses return 0, matching zero-initialized guest memory;
// addresses listed in faults report a fault error instead.
type fakeMemory struct {
	bytes  map[uint32]byte
	faults map[uint32]bool
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{bytes: make(map[uint32]byte), faults: make(map[uint32]bool)}
}

func (m *fakeMemory) Get(addr uint32) (byte, error) {
	if m.faults[addr] {
		return 0, api.NewFaultError(addr)
	}
	return m.bytes[addr], nil
}

func (m *fakeMemory) Set(addr uint32, b byte) error {
	if m.faults[addr] {
		return api.NewFaultError(addr)
	}
	m.bytes[addr] = b
	return nil
}

func (m *fakeMemory) writeString(addr uint32, s string) {
	for i := 0; i < len(s); i++ {
		m.bytes[addr+uint32(i)] = s[i]
	}
}

func (m *fakeMemory) readBytes(addr uint32, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = m.bytes[addr+uint32(i)]
	}
	return out
}

// fakeExecutor is a minimal api.Executor good enough to drive syscall
// handlers directly, without a real instruction-decoding CPU behind it.
type fakeExecutor struct {
	regs         *fakeRegisters
	mem          *fakeMemory
	frame        api.DebugFrame
	handledCount int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{regs: &fakeRegisters{}, mem: newFakeMemory()}
}

func (e *fakeExecutor) WithRegisters(f func(api.Registers)) { f(e.regs) }

func (e *fakeExecutor) WithMemory(f func(api.Memory) error) error { return f(e.mem) }

func (e *fakeExecutor) Frame() api.DebugFrame { return e.frame }

func (e *fakeExecutor) SyscallHandled() { e.handledCount++ }

func (e *fakeExecutor) Run(bool) api.DebugFrame { return e.frame }

func (e *fakeExecutor) RunBatched(int, bool, bool) bool { return false }

// fakeConsole records every Print call for assertions.
type fakeConsole struct {
	writes []string
	errs   []bool
}

func (c *fakeConsole) Print(text string, isError bool) {
	c.writes = append(c.writes, text)
	c.errs = append(c.errs, isError)
}

// fakeTime is a TimeHandler whose clock and sleep behavior tests control
// directly.
type fakeTime struct {
	now      uint64
	clockOK  bool
	slept    []time.Duration
	sleepErr bool // when true, SleepFor blocks until ctx is cancelled
}

func (t *fakeTime) Time() (uint64, bool) { return t.now, t.clockOK }

func (t *fakeTime) SleepFor(ctx context.Context, d time.Duration) {
	t.slept = append(t.slept, d)
	if !t.sleepErr {
		return
	}
	<-ctx.Done()
}

// fakeMidi is a MidiHandler test double.
type fakeMidi struct {
	installedSet map[uint32]bool
	plays        []struct {
		instrument uint32
		sync       bool
	}
	installResult bool
}

func newFakeMidi() *fakeMidi {
	return &fakeMidi{installedSet: make(map[uint32]bool)}
}

func (m *fakeMidi) Installed(instrument uint32) bool { return m.installedSet[instrument] }

func (m *fakeMidi) Play(req midi.Request, sync bool) {
	m.plays = append(m.plays, struct {
		instrument uint32
		sync       bool
	}{req.Instrument, sync})
}

func (m *fakeMidi) Install(ctx context.Context, instrument uint32) bool {
	if m.installResult {
		m.installedSet[instrument] = true
	}
	return m.installResult
}
