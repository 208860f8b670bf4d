package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// setSeed implements syscall 40: creates or replaces the generator at id
// ($a0), seeded deterministically from seed ($a1).
func (s *State) setSeed(ex api.Executor) result.Result {
	id, seed := getA0A1(ex)
	s.generators.SetSeed(id, seed)
	return result.OK()
}

// randomInt implements syscall 41. The result overwrites $a0, the same
// register the generator id was read from.
func (s *State) randomInt(ex api.Executor) result.Result {
	id := a0(ex)
	value, err := s.generators.Uint32(id)
	if err != nil {
		return result.Fail("%s", err.Error())
	}
	setA0(ex, value)
	return result.OK()
}

// randomIntRanged implements syscall 42: a uniform draw in [0, max), max
// read from $a1, result overwriting $a0.
func (s *State) randomIntRanged(ex api.Executor) result.Result {
	id, max := getA0A1(ex)
	value, err := s.generators.Uint32Ranged(id, max)
	if err != nil {
		return result.Fail("%s", err.Error())
	}
	setA0(ex, value)
	return result.OK()
}
