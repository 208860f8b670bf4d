// Package api defines the contract the CPU executor must satisfy for the
// syscall service layer to drive it. The executor itself (instruction
// decoding, the register bank, the memory model) is a collaborator owned
// elsewhere; this package only describes the shape it must expose.
package api

// Memory is the guest's addressable byte space. Get and Set return an error
// when addr falls outside whatever region the executor currently maps.
type Memory interface {
	Get(addr uint32) (byte, error)
	Set(addr uint32, b byte) error
}

// Registers is the guest's architectural register bank, indexed the MIPS
// o32 way (2 is $v0, 4..7 are $a0..$a3).
type Registers interface {
	Get(index int) uint32
	Set(index int, value uint32)
}

// Well-known MIPS o32 register indices used by the syscall convention.
const (
	V0 = 2
	A0 = 4
	A1 = 5
	A2 = 6
	A3 = 7
)

// TrapKind distinguishes why the executor stopped.
type TrapKind int

const (
	// TrapNone means the frame does not represent a trap at all (e.g. the
	// executor ran to completion or was interrupted mid-batch for an
	// unrelated reason).
	TrapNone TrapKind = iota
	// TrapSyscall means the guest executed a syscall instruction and is
	// waiting on the host to service it.
	TrapSyscall
	// TrapFault means the CPU hit a fatal, unrecoverable error (invalid
	// instruction, bad alignment, ...).
	TrapFault
)

// DebugFrame is a snapshot describing why the executor stopped running.
type DebugFrame struct {
	PC   uint32
	Trap TrapKind
	// Err carries the CPU error when Trap == TrapFault.
	Err error
}

// IsSyscall reports whether this frame represents a syscall trap.
func (f DebugFrame) IsSyscall() bool { return f.Trap == TrapSyscall }

// IsFault reports whether this frame represents a fatal CPU fault.
func (f DebugFrame) IsFault() bool { return f.Trap == TrapFault }

// Executor is the CPU executor contract. Implementations decode and run
// guest instructions; this package never implements it.
type Executor interface {
	// WithRegisters grants scoped mutable access to the register bank.
	WithRegisters(f func(Registers))
	// WithMemory grants scoped access to guest memory. Any error returned
	// by f is propagated to the caller unchanged.
	WithMemory(f func(Memory) error) error
	// Frame returns the current debug frame.
	Frame() DebugFrame
	// SyscallHandled tells the executor the trap at the current PC has
	// been serviced and execution may continue past the syscall
	// instruction.
	SyscallHandled()
	// Run free-runs the executor until it traps or halts. skipFirst, when
	// true, skips breakpoint checks on the very first instruction (used to
	// step past a breakpoint the caller just resumed from).
	Run(skipFirst bool) DebugFrame
	// RunBatched runs at most n instructions, returning whether it was
	// interrupted before completing the batch (by a trap, a breakpoint, or
	// allowInterrupt combined with an external pause request).
	RunBatched(n int, skipFirst, allowInterrupt bool) (interrupted bool)
}
