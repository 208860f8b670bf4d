// Package result defines the outcome of dispatching a single syscall.
//
// A guest syscall can finish in exactly one of a handful of ways; Go has no
// sum type, so this follows the same enum-plus-payload shape wazero's own
// sys package uses for ExitError: a small Kind enum for cheap comparisons
// and switches, paired with a struct carrying whatever payload that Kind
// needs.
package result

import "fmt"

// Kind identifies which variant a Result holds.
type Kind int

const (
	// Completed means the syscall ran to completion; any state it touched
	// is now observable and the guest may resume past the syscall
	// instruction.
	Completed Kind = iota
	// Failure means the syscall was semantically misused (bad open flags,
	// an unseeded RNG generator, an empty random range, a dead clock).
	// Message describes what went wrong; surface it to the user.
	Failure
	// Terminated means the guest asked to exit, carrying its exit code.
	Terminated
	// Aborted means the user cancelled the in-flight syscall. Guest state
	// at the trap point is left untouched.
	Aborted
	// Unimplemented means the syscall number is recognized but never
	// implemented (floating point I/O). Code is the syscall number.
	Unimplemented
	// Unknown means the syscall number is not recognized at all. Code is
	// the syscall number.
	Unknown
	// Exception means a CPU-level fault occurred while moving arguments or
	// results across the guest/host boundary. Err holds the fault.
	Exception
)

func (k Kind) String() string {
	switch k {
	case Completed:
		return "Completed"
	case Failure:
		return "Failure"
	case Terminated:
		return "Terminated"
	case Aborted:
		return "Aborted"
	case Unimplemented:
		return "Unimplemented"
	case Unknown:
		return "Unknown"
	case Exception:
		return "Exception"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of dispatching one syscall. Only the fields
// relevant to Kind are populated; the zero Result is Completed.
type Result struct {
	Kind    Kind
	Message string // Failure
	Code    uint32 // Terminated, Unimplemented, Unknown
	Err     error  // Exception
}

func (r Result) String() string {
	switch r.Kind {
	case Failure:
		return fmt.Sprintf("Failure(%s)", r.Message)
	case Terminated:
		return fmt.Sprintf("Terminated(%d)", r.Code)
	case Unimplemented:
		return fmt.Sprintf("Unimplemented(%d)", r.Code)
	case Unknown:
		return fmt.Sprintf("Unknown(%d)", r.Code)
	case Exception:
		return fmt.Sprintf("Exception(%v)", r.Err)
	default:
		return r.Kind.String()
	}
}

// OK constructs a Completed result.
func OK() Result { return Result{Kind: Completed} }

// Fail constructs a Failure result with the given message.
func Fail(format string, args ...any) Result {
	return Result{Kind: Failure, Message: fmt.Sprintf(format, args...)}
}

// Exit constructs a Terminated result with the given exit code.
func Exit(code uint32) Result { return Result{Kind: Terminated, Code: code} }

// Cancelled constructs an Aborted result.
func Cancelled() Result { return Result{Kind: Aborted} }

// NotImplemented constructs an Unimplemented result for the given syscall
// code.
func NotImplemented(code uint32) Result { return Result{Kind: Unimplemented, Code: code} }

// Unrecognized constructs an Unknown result for the given syscall code.
func Unrecognized(code uint32) Result { return Result{Kind: Unknown, Code: code} }

// Fault constructs an Exception result wrapping a CPU error.
func Fault(err error) Result { return Result{Kind: Exception, Err: err} }

// IsCompleted reports whether r is the only variant after which the driver
// should tell the executor the syscall was handled.
func (r Result) IsCompleted() bool { return r.Kind == Completed }
