package hostsys

import (
	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/internal/midi"
	"github.com/saturnsim/core/result"
)

func midiRequestFrom(ex api.Executor) midi.Request {
	pitch, duration, instrument, volume := getA0A1A2A3(ex)
	return midi.Request{
		Pitch:      pitch,
		DurationMS: duration,
		Instrument: instrument,
		Volume:     volume,
	}
}

// playInstalled plays req immediately if its instrument is already
// installed, reporting whether it did.
func (s *State) playInstalled(req midi.Request, sync bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.midi == nil {
		return false
	}
	if s.midi.Installed(req.Instrument) {
		s.midi.Play(req, sync)
		return true
	}
	return false
}

// midiOut implements syscall 31. If the instrument isn't installed yet, it
// triggers installation and plays on success; either way it never blocks
// the guest on the note's duration.
func (s *State) midiOut(ex api.Executor) result.Result {
	req := midiRequestFrom(ex)

	if s.playInstalled(req, false) || s.midi == nil {
		return result.OK()
	}

	ctx, cancelFn := ctxFromDone(s.cancelToken.Done())
	defer cancelFn()

	if s.midi.Install(ctx, req.Instrument) {
		s.mu.Lock()
		s.midi.Play(req, false)
		s.mu.Unlock()
	}
	return result.OK()
}

// midiOutSync implements syscall 33: the same install-then-play path as
// midi_out, but plays in sync mode and then suspends until WakeSync
// fulfills the one-shot wake channel or cancellation resolves it.
func (s *State) midiOutSync(ex api.Executor) result.Result {
	req := midiRequestFrom(ex)
	wake := s.armSyncWake()

	if s.playInstalled(req, true) {
		select {
		case <-wake:
		case <-s.cancelToken.Done():
		}
		return result.OK()
	}

	if s.midi == nil {
		return result.OK()
	}

	ctx, cancelFn := ctxFromDone(s.cancelToken.Done())
	defer cancelFn()

	if s.midi.Install(ctx, req.Instrument) {
		s.mu.Lock()
		s.midi.Play(req, true)
		s.mu.Unlock()

		select {
		case <-wake:
		case <-s.cancelToken.Done():
		}
	}
	return result.OK()
}
