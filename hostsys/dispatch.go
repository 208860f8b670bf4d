package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/internal/obslog"
	"github.com/saturnsim/core/result"
)

// handlerName labels dispatch table entries for logging; kept as a small
// lookup rather than threading a name through every handler signature.
var handlerName = map[uint32]string{
	1: "print_int", 2: "print_float", 3: "print_double", 4: "print_string",
	5: "read_int", 6: "read_float", 7: "read_double", 8: "read_string",
	9: "sbrk", 10: "exit", 11: "print_char", 12: "read_char",
	13: "open_file", 14: "read_file", 15: "write_file", 16: "close_file",
	17: "exit_valued",
	30: "system_time", 31: "midi_out", 32: "sleep", 33: "midi_out_sync",
	34: "print_hex", 35: "print_bin", 36: "print_unsigned",
	40: "set_seed", 41: "random_int", 42: "random_int_ranged",
	43: "random_float", 44: "random_double",
}

func scopeFor(code uint32) obslog.Scopes {
	switch code {
	case 13, 14, 15, 16:
		return obslog.ScopeFile
	case 31, 33:
		return obslog.ScopeMidi
	case 30, 32:
		return obslog.ScopeClock
	case 40, 41, 42, 43, 44:
		return obslog.ScopeRandom
	case 9:
		return obslog.ScopeHeap
	default:
		return obslog.ScopeConsole
	}
}

// Dispatch decodes code and runs the matching handler against ex, wrapping
// it in cancellation exactly as with_cancel does: the token is armed first
// (returning Aborted immediately if already cancelled), the handler races
// against the token firing, and the token is released once either settles.
func (s *State) Dispatch(ex api.Executor, code uint32) result.Result {
	name, known := handlerName[code]
	if !known {
		return result.Unrecognized(code)
	}
	scope := scopeFor(code)

	s.log.Before(scope, name, code)
	r := s.cancelToken.Run(func() result.Result {
		return s.call(ex, code)
	})
	s.log.After(scope, name, code, r.String())
	return r
}

// call runs the handler for code with no cancellation wrapping of its own;
// Dispatch supplies that. Split out so Token.Run has a plain closure to
// invoke on its worker goroutine.
func (s *State) call(ex api.Executor, code uint32) result.Result {
	switch code {
	case 1:
		return s.printInt(ex)
	case 2:
		return result.NotImplemented(2)
	case 3:
		return result.NotImplemented(3)
	case 4:
		return s.printString(ex)
	case 5:
		return s.readInt(ex)
	case 6:
		return result.NotImplemented(6)
	case 7:
		return result.NotImplemented(7)
	case 8:
		return s.readString(ex)
	case 9:
		return s.sbrk(ex)
	case 10:
		return result.Exit(0)
	case 11:
		return s.printChar(ex)
	case 12:
		return s.readChar(ex)
	case 13:
		return s.openFile(ex)
	case 14:
		return s.readFile(ex)
	case 15:
		return s.writeFile(ex)
	case 16:
		return s.closeFile(ex)
	case 17:
		return s.exitValued(ex)
	case 30:
		return s.systemTime(ex)
	case 31:
		return s.midiOut(ex)
	case 32:
		return s.sleep(ex)
	case 33:
		return s.midiOutSync(ex)
	case 34:
		return s.printHex(ex)
	case 35:
		return s.printBin(ex)
	case 36:
		return s.printUnsigned(ex)
	case 40:
		return s.setSeed(ex)
	case 41:
		return s.randomInt(ex)
	case 42:
		return s.randomIntRanged(ex)
	case 43:
		return result.NotImplemented(43)
	case 44:
		return result.NotImplemented(44)
	default:
		return result.Unrecognized(code)
	}
}
