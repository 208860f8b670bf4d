package hostsys

import (
	"path/filepath"
	"testing"

	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/internal/testing/require"
	"github.com/saturnsim/core/result"
)

// open(mode=1) -> write -> close -> open(mode=0) -> read returns the
// written bytes, and successive opens hand out strictly increasing,
// distinct descriptors.
func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := newTestState(nil, nil, nil)
	ex := newFakeExecutor()

	nameAddr := uint32(0x2000)
	ex.mem.writeString(nameAddr, path)
	ex.mem.bytes[nameAddr+uint32(len(path))] = 0

	ex.regs.line[api.A0] = nameAddr
	ex.regs.line[api.A1] = 1 // create/truncate
	r := s.Dispatch(ex, 13)
	require.Equal(t, result.Completed, r.Kind)
	writeFd := ex.regs.Get(api.V0)
	require.Equal(t, uint32(3), writeFd)

	payload := "hello file"
	dataAddr := uint32(0x3000)
	ex.mem.writeString(dataAddr, payload)
	ex.regs.line[api.A0] = writeFd
	ex.regs.line[api.A1] = dataAddr
	ex.regs.line[api.A2] = uint32(len(payload))
	r = s.Dispatch(ex, 15)
	require.Equal(t, result.Completed, r.Kind)
	require.Equal(t, uint32(len(payload)), ex.regs.Get(api.V0))

	ex.regs.line[api.A0] = writeFd
	r = s.Dispatch(ex, 16)
	require.Equal(t, result.Completed, r.Kind)

	ex.regs.line[api.A0] = nameAddr
	ex.regs.line[api.A1] = 0 // read
	r = s.Dispatch(ex, 13)
	require.Equal(t, result.Completed, r.Kind)
	readFd := ex.regs.Get(api.V0)
	require.Equal(t, uint32(4), readFd)
	require.NotEqual(t, writeFd, readFd)

	readAddr := uint32(0x4000)
	ex.regs.line[api.A0] = readFd
	ex.regs.line[api.A1] = readAddr
	ex.regs.line[api.A2] = uint32(len(payload))
	r = s.Dispatch(ex, 14)
	require.Equal(t, result.Completed, r.Kind)
	require.Equal(t, uint32(len(payload)), ex.regs.Get(api.V0))
	require.Equal(t, []byte(payload), ex.mem.readBytes(readAddr, len(payload)))
}

func TestReadFileUnknownDescriptor(t *testing.T) {
	s := newTestState(nil, nil, nil)
	ex := newFakeExecutor()
	ex.regs.line[api.A0] = 42

	r := s.Dispatch(ex, 14)
	require.Equal(t, result.Completed, r.Kind)
	require.Equal(t, uint32(0xFFFFFFFF), ex.regs.Get(api.V0))
}

func TestOpenFileMissingReturnsNegativeOne(t *testing.T) {
	s := newTestState(nil, nil, nil)
	ex := newFakeExecutor()

	path := filepath.Join(t.TempDir(), "does-not-exist.txt")
	addr := uint32(0x2000)
	ex.mem.writeString(addr, path)
	ex.mem.bytes[addr+uint32(len(path))] = 0

	ex.regs.line[api.A0] = addr
	ex.regs.line[api.A1] = 0 // read a nonexistent file

	r := s.Dispatch(ex, 13)
	require.Equal(t, result.Completed, r.Kind)
	require.Equal(t, uint32(0xFFFFFFFF), ex.regs.Get(api.V0))
}

func TestOpenFileInvalidFlags(t *testing.T) {
	s := newTestState(nil, nil, nil)
	ex := newFakeExecutor()

	addr := uint32(0x2000)
	ex.mem.writeString(addr, "whatever.txt")
	ex.mem.bytes[addr+12] = 0
	ex.regs.line[api.A0] = addr
	ex.regs.line[api.A1] = 5

	r := s.Dispatch(ex, 13)
	require.Equal(t, result.Failure, r.Kind)
}

func TestCloseFileAbsentIsNoop(t *testing.T) {
	s := newTestState(nil, nil, nil)
	ex := newFakeExecutor()
	ex.regs.line[api.A0] = 99

	r := s.Dispatch(ex, 16)
	require.Equal(t, result.Completed, r.Kind)
}

// read_string(n) followed by print_string of the same buffer reproduces the
// original input truncated at n-1 bytes or a newline, NUL-terminated in
// memory.
func TestReadStringThenPrintStringRoundTrip(t *testing.T) {
	console := &fakeConsole{}
	clock := &fakeTime{clockOK: true}
	s := newTestState(console, clock, nil)
	s.Input.Write([]byte("short\n"))
	ex := newFakeExecutor()

	ex.regs.line[api.A0] = 0x1000
	ex.regs.line[api.A1] = 100
	r := s.Dispatch(ex, 8)
	require.Equal(t, result.Completed, r.Kind)

	r = s.Dispatch(ex, 4)
	require.Equal(t, result.Completed, r.Kind)
	require.Equal(t, []string{"short"}, console.writes)
}
