package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// systemTime implements syscall 30: milliseconds since the Unix epoch, low
// 32 bits in $a0 and high 32 bits in $a1.
func (s *State) systemTime(ex api.Executor) result.Result {
	if s.time == nil {
		return result.Fail("system clock failed to get current time")
	}
	millis, ok := s.time.Time()
	if !ok {
		return result.Fail("system clock failed to get current time")
	}

	setA0A1(ex, uint32(millis), uint32(millis>>32))
	return result.OK()
}
