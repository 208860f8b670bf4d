package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// sbrk implements syscall 9: returns the current heap pointer in $v0 and
// advances it by $a0 bytes.
func (s *State) sbrk(ex api.Executor) result.Result {
	size := a0(ex)

	s.mu.Lock()
	pointer := s.heap.Alloc(size)
	s.mu.Unlock()

	setV0(ex, pointer)
	return result.OK()
}
