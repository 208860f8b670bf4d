package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

// exitValued implements syscall 17: terminate with the exit code in $a0.
// Syscall 10 (plain exit) is handled inline in the dispatch table since it
// takes no argument.
func (s *State) exitValued(ex api.Executor) result.Result {
	return result.Exit(a0(ex))
}
