// Package console implements the ConsoleSink capability: tagged normal/error
// text output to the user-visible console. It mirrors the Stdout/Stderr
// io.Writer pair wazero's internal/sys.Context exposes, defaulting both to
// io.Discard so a State built without a configured sink never panics.
package console

import "io"

// Sink writes console output, routed by whether the caller marked it as an
// error.
type Sink struct {
	Out io.Writer
	Err io.Writer
}

// New builds a Sink writing to the given writers. A nil writer is replaced
// with io.Discard.
func New(out, err io.Writer) *Sink {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}
	return &Sink{Out: out, Err: err}
}

// Print writes text to the console, tagged normal or error.
func (s *Sink) Print(text string, isError bool) {
	w := s.Out
	if isError {
		w = s.Err
	}
	if w == nil {
		return
	}
	io.WriteString(w, text)
}
