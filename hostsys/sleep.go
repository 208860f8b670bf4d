package hostsys

import (
	"time"

	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// sleep implements syscall 32: a cooperative sleep for $a0 milliseconds,
// interruptible by cancellation.
func (s *State) sleep(ex api.Executor) result.Result {
	if s.time == nil {
		return result.OK()
	}
	ms := a0(ex)

	ctx, cancelFn := ctxFromDone(s.cancelToken.Done())
	defer cancelFn()

	s.time.SleepFor(ctx, time.Duration(ms)*time.Millisecond)
	if ctx.Err() != nil {
		return result.Cancelled()
	}
	return result.OK()
}
