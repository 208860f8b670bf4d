package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/internal/bytechannel"
	"github.com/saturnsim/core/result"
)

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// intPredicate accumulates the sign and digit run read_int consumes. It
// owns its state as struct fields rather than captured closure variables so
// its lifetime across ByteChannel suspension points stays explicit.
type intPredicate struct {
	haveSign bool
	positive bool
	value    int64
}

func (p *intPredicate) Consider(b byte) bytechannel.Disposition {
	c := rune(b)

	if !p.haveSign {
		if isASCIISpace(b) {
			return bytechannel.ConsumeAndContinue
		}
		switch c {
		case '+':
			p.haveSign, p.positive = true, true
			return bytechannel.ConsumeAndContinue
		case '-':
			p.haveSign, p.positive = true, false
			return bytechannel.ConsumeAndContinue
		default:
			// No explicit sign: default to positive and fall through to
			// the digit test below on this same byte.
			p.haveSign, p.positive = true, true
		}
	}

	if c >= '0' && c <= '9' {
		p.value = p.value*10 + int64(c-'0')
		return bytechannel.ConsumeAndContinue
	}
	return bytechannel.IgnoreAndStop
}

func (s *State) readInt(ex api.Executor) result.Result {
	pred := &intPredicate{}
	if !s.Input.ReadUntil(pred, s.cancelToken.Done()) {
		return result.Cancelled()
	}

	sign := int64(1)
	if !pred.positive {
		sign = -1
	}
	setV0(ex, uint32(sign*pred.value))
	return result.OK()
}

// stringPredicate collects bytes for read_string up to limit, stopping
// (and consuming) at a newline.
type stringPredicate struct {
	limit int
	data  []byte
}

func (p *stringPredicate) Consider(b byte) bytechannel.Disposition {
	if len(p.data) >= p.limit {
		return bytechannel.IgnoreAndStop
	}
	if b == '\n' {
		return bytechannel.ConsumeAndStop
	}
	p.data = append(p.data, b)
	return bytechannel.ConsumeAndContinue
}

func (s *State) readString(ex api.Executor) result.Result {
	address, count := getA0A1(ex)
	if count < 1 {
		return result.OK()
	}

	pred := &stringPredicate{limit: int(count) - 1}
	if !s.Input.ReadUntil(pred, s.cancelToken.Done()) {
		return result.Cancelled()
	}
	data := append(pred.data, 0)

	err := ex.WithMemory(func(m api.Memory) error {
		for i, b := range data {
			if ferr := m.Set(address+uint32(i), b); ferr != nil {
				return ferr
			}
		}
		return nil
	})
	if err != nil {
		return result.Fault(err)
	}
	return result.OK()
}

func (s *State) readChar(ex api.Executor) result.Result {
	data, ok := s.Input.Read(1, s.cancelToken.Done())
	if !ok || len(data) != 1 {
		return result.Cancelled()
	}
	setV0(ex, uint32(data[0]))
	return result.OK()
}
