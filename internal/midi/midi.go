// Package midi implements the MidiSink capability backing syscalls 31 and
// 33: playing a note and lazily installing an instrument sample. The actual
// audio device and the network/asset fetch that supplies a sample are host
// platform integration and stay external collaborators; this package only
// owns the install-cache bookkeeping: checking and recording which
// instruments already have their sample installed.
package midi

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// Request mirrors the MIPS argument registers for syscalls 31/33.
type Request struct {
	Pitch      uint32 // 0-127
	DurationMS uint32
	Instrument uint32 // 0-127
	Volume     uint32 // 0-127
}

// Player is the external collaborator that actually produces sound. sync
// reports whether the guest is waiting on the note's duration.
type Player interface {
	Play(req Request, sync bool)
}

// Installer fetches an instrument's sample data and writes it wherever
// Sink expects to find it (under the configured SampleDir). Installation
// may involve network access, so it takes a context and can fail.
type Installer interface {
	Install(ctx context.Context, instrument uint32) error
}

// Namer resolves a numeric instrument id to its sample name. Instruments
// with no known name are never playable.
type Namer func(instrument uint32) (name string, ok bool)

// Sink is the default MidiHandler: it resolves instrument names, checks an
// in-memory cache and then the filesystem for an installed sample, and
// delegates actual playback/install to injected collaborators.
type Sink struct {
	Namer     Namer
	Player    Player
	Installer Installer
	SampleDir string // app-local data directory samples are cached under

	mu        sync.Mutex
	installed map[uint32]struct{}
}

// New builds a Sink. namer, player, and installer must be non-nil for Play
// and Install to do anything useful; sampleDir may be empty, in which case
// filesystem-based install checks always report false.
func New(namer Namer, player Player, installer Installer, sampleDir string) *Sink {
	return &Sink{
		Namer:     namer,
		Player:    player,
		Installer: installer,
		SampleDir: sampleDir,
		installed: make(map[uint32]struct{}),
	}
}

// Play forwards to Player for a known instrument. Unknown instruments are
// silently dropped.
func (s *Sink) Play(req Request, sync bool) {
	if s.Namer == nil {
		return
	}
	if _, ok := s.Namer(req.Instrument); !ok {
		return
	}
	if s.Player != nil {
		s.Player.Play(req, sync)
	}
}

// Installed reports whether instrument's sample is available, consulting
// the in-memory cache first and then the filesystem, exactly mirroring
// ForwardMidi.installed.
func (s *Sink) Installed(instrument uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.installed[instrument]; ok {
		return true
	}

	if s.Namer == nil {
		return false
	}
	name, ok := s.Namer(instrument)
	if !ok {
		return false
	}

	if s.SampleDir == "" {
		return false
	}
	path := filepath.Join(s.SampleDir, "midi", name+"-mp3.js")
	if _, err := os.Stat(path); err != nil {
		return false
	}

	s.installed[instrument] = struct{}{}
	return true
}

// Install triggers installation of instrument's sample, returning whether
// it succeeded. On success the instrument is marked installed in the
// in-memory cache so future Installed calls short-circuit.
func (s *Sink) Install(ctx context.Context, instrument uint32) bool {
	if s.Namer == nil {
		return false
	}
	if _, ok := s.Namer(instrument); !ok {
		return false
	}
	if s.Installer == nil {
		return false
	}

	if err := s.Installer.Install(ctx, instrument); err != nil {
		return false
	}

	s.mu.Lock()
	s.installed[instrument] = struct{}{}
	s.mu.Unlock()
	return true
}
