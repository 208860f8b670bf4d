// Package hostsys implements the syscall service layer: the state a guest
// program's syscalls operate against, and the dispatcher that decodes a
// syscall code into the handler that services it. Handlers are built
// around api.Executor rather than an async trait-object executor.
package hostsys

import (
	"context"
	"sync"
	"time"

	"github.com/saturnsim/core/internal/bytechannel"
	"github.com/saturnsim/core/internal/cancel"
	"github.com/saturnsim/core/internal/filetable"
	"github.com/saturnsim/core/internal/heap"
	"github.com/saturnsim/core/internal/midi"
	"github.com/saturnsim/core/internal/obslog"
	"github.com/saturnsim/core/internal/rngpool"
)

// ConsoleHandler prints tagged console text. console.Sink satisfies this.
type ConsoleHandler interface {
	Print(text string, isError bool)
}

// MidiHandler plays notes and lazily installs instrument samples.
// midi.Sink satisfies this.
type MidiHandler interface {
	Play(req midi.Request, sync bool)
	Install(ctx context.Context, instrument uint32) bool
	Installed(instrument uint32) bool
}

// TimeHandler reads wall-clock time and performs a cancellable sleep.
// timesource.Source satisfies this.
type TimeHandler interface {
	Time() (millis uint64, ok bool)
	SleepFor(ctx context.Context, d time.Duration)
}

// Config builds a State. Start from NewConfig; a zero Config (or a nil one)
// behaves the same, since New substitutes a no-op logger when none is set.
// Generator 0, the heap base, and the first file descriptor are not Config
// settings: New always sets them up itself. Each With method returns a new
// Config, leaving the receiver untouched, the way wazero's
// RuntimeConfig/ModuleConfig builders work.
type Config struct {
	console          ConsoleHandler
	midi             MidiHandler
	time             TimeHandler
	currentDirectory string
	log              obslog.Listener
}

// NewConfig returns a Config with a discarding console, no MIDI handler, no
// time source, and no logging. Use the With methods to wire real
// collaborators before calling New.
func NewConfig() *Config {
	return &Config{log: obslog.NopListener{}}
}

func (c *Config) clone() *Config {
	cp := *c
	return &cp
}

// WithConsole sets the console sink syscalls 1, 4, 11, 34, 35, 36 print to.
func (c *Config) WithConsole(console ConsoleHandler) *Config {
	ret := c.clone()
	ret.console = console
	return ret
}

// WithMidi sets the MIDI sink syscalls 31 and 33 play through.
func (c *Config) WithMidi(midi MidiHandler) *Config {
	ret := c.clone()
	ret.midi = midi
	return ret
}

// WithTime sets the clock/sleep source syscalls 30 and 32 use.
func (c *Config) WithTime(time TimeHandler) *Config {
	ret := c.clone()
	ret.time = time
	return ret
}

// WithCurrentDirectory sets the base path relative guest filenames resolve
// against in syscall 13. An empty string means relative paths are passed to
// the host unresolved.
func (c *Config) WithCurrentDirectory(dir string) *Config {
	ret := c.clone()
	ret.currentDirectory = dir
	return ret
}

// WithLogger installs a Listener notified before/after each dispatched
// syscall. Defaults to a no-op.
func (c *Config) WithLogger(log obslog.Listener) *Config {
	ret := c.clone()
	if log == nil {
		log = obslog.NopListener{}
	}
	ret.log = log
	return ret
}

// State aggregates every stateful resource a guest program's syscalls touch:
// the cancellation token, the input channel, the sync-MIDI wake slot, the
// current directory, the heap pointer, the console/midi/time capabilities,
// the RNG pool, and the file descriptor table. Exactly one syscall runs
// against a State at a time; handlers hold mu only for short critical
// sections and release it across any suspension.
type State struct {
	mu sync.Mutex

	cancelToken cancel.Token

	// Input is the ByteChannel syscalls 5, 8, and 12 read from. Producers
	// (keyboard, pasted text) write to it from outside the syscall path.
	Input *bytechannel.Channel

	syncWake chan struct{} // installed by each syscall 33 call; cleared by WakeSync or Cancel

	currentDirectory string

	heap *heap.Bump

	console ConsoleHandler
	midi    MidiHandler
	time    TimeHandler

	generators *rngpool.Pool
	files      *filetable.Table

	log obslog.Listener
}

// New builds a State from cfg, matching SyscallState::new: generator 0 is
// preseeded from OS entropy, the heap pointer starts at its base address,
// and the file table starts handing out descriptors at 3.
func New(cfg *Config) *State {
	if cfg == nil {
		cfg = NewConfig()
	}
	log := cfg.log
	if log == nil {
		log = obslog.NopListener{}
	}
	return &State{
		Input:            bytechannel.New(),
		currentDirectory: cfg.currentDirectory,
		heap:             heap.New(),
		console:          cfg.console,
		midi:             cfg.midi,
		time:             cfg.time,
		generators:       rngpool.New(),
		files:            filetable.New(),
		log:              log,
	}
}

// Cancel aborts the currently in-flight syscall, if any, and marks the
// token cancelled so any syscall started before ClearCancelled is called
// returns Aborted immediately. Idempotent.
func (s *State) Cancel() {
	s.cancelToken.Fire()

	s.mu.Lock()
	wake := s.syncWake
	s.syncWake = nil
	s.mu.Unlock()
	if wake != nil {
		close(wake)
	}
}

// ClearCancelled resets the cancellation state so the next syscall may
// proceed normally.
func (s *State) ClearCancelled() {
	s.cancelToken.Clear()
}

// WakeSync fulfills a guest blocked in syscall 33 (midi_out_sync) on its
// note finishing playback. It is an externally triggered operation: the
// host UI calls it once it judges the note has played out, independent of
// the cancellation path. A call with nothing waiting is a no-op.
func (s *State) WakeSync() {
	s.mu.Lock()
	wake := s.syncWake
	s.syncWake = nil
	s.mu.Unlock()
	if wake != nil {
		close(wake)
	}
}

// armSyncWake installs a fresh wake channel for midi_out_sync to block on,
// replacing whatever was there (there should never be more than one guest
// syscall in flight against a State).
func (s *State) armSyncWake() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.syncWake = ch
	return ch
}
