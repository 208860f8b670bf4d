package hostsys

import (
	"io"
	"os"
	"path/filepath"

	"github.com/saturnsim/core/api"
	"github.com/saturnsim/core/result"
)

const (
	openRead           = 0
	openCreateTruncate = 1
	openAppend         = 9
)

// resolvePath joins a relative filename against the configured current
// directory. Absolute paths, and relative paths when no current directory
// is configured, pass through to the host unchanged.
func (s *State) resolvePath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	s.mu.Lock()
	dir := s.currentDirectory
	s.mu.Unlock()
	if dir == "" {
		return filename
	}
	return filepath.Join(dir, filename)
}

// openFile implements syscall 13. Mode ($a2) is ignored; flags selects
// read/create-truncate/append. A failed open writes -1 to $v0 rather than
// returning Failure; unrecognized flags do return Failure.
func (s *State) openFile(ex api.Executor) result.Result {
	address, flags := getA0A1(ex)

	var filename string
	err := ex.WithMemory(func(m api.Memory) error {
		var ferr error
		filename, ferr = grabString(address, m, 400)
		return ferr
	})
	if err != nil {
		return result.Fault(err)
	}

	path := s.resolvePath(filename)

	var file *os.File
	var openErr error
	switch flags {
	case openRead:
		file, openErr = os.Open(path)
	case openCreateTruncate:
		file, openErr = os.Create(path)
	case openAppend:
		file, openErr = os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	default:
		return result.Fail("invalid flags %d for opening file %s", flags, filename)
	}

	if openErr != nil {
		setV0(ex, ^uint32(0)) // -1
		return result.OK()
	}

	s.mu.Lock()
	fd := s.files.Insert(file, filename)
	s.mu.Unlock()

	setV0(ex, fd)
	return result.OK()
}

// readFile implements syscall 14. An unknown descriptor writes -1 to $v0; a
// read error writes -2. On success the bytes read are written to guest
// memory and their count returned in $v0.
func (s *State) readFile(ex api.Executor) result.Result {
	fd, address, size := getA0A1A2(ex)

	s.mu.Lock()
	entry, ok := s.files.Lookup(fd)
	s.mu.Unlock()
	if !ok {
		setV0(ex, ^uint32(0)) // -1
		return result.OK()
	}

	buffer := make([]byte, size)
	n, readErr := entry.File.Read(buffer)
	if readErr != nil && readErr != io.EOF {
		setV0(ex, ^uint32(1)) // -2
		return result.OK()
	}

	if err := writeBytesAt(ex, address, buffer[:n]); err != nil {
		return result.Fault(err)
	}

	setV0(ex, uint32(n))
	return result.OK()
}

// writeFile implements syscall 15: gathers $a2 bytes from guest memory
// first (a memory fault here is an Exception), then writes them to the
// host file. A write error (wrong open mode) writes -2 to $v0.
func (s *State) writeFile(ex api.Executor) result.Result {
	fd, address, size := getA0A1A2(ex)

	buffer, err := readBytesAt(ex, address, int(size))
	if err != nil {
		return result.Fault(err)
	}

	s.mu.Lock()
	entry, ok := s.files.Lookup(fd)
	s.mu.Unlock()
	if !ok {
		setV0(ex, ^uint32(0)) // -1
		return result.OK()
	}

	n, writeErr := entry.File.Write(buffer)
	if writeErr != nil {
		setV0(ex, ^uint32(1)) // -2
		return result.OK()
	}

	setV0(ex, uint32(n))
	return result.OK()
}

// closeFile implements syscall 16: removes the descriptor, silently if
// absent. The underlying host file is closed explicitly rather than left
// for the garbage collector.
func (s *State) closeFile(ex api.Executor) result.Result {
	fd := a0(ex)

	s.mu.Lock()
	if entry, ok := s.files.Lookup(fd); ok {
		entry.File.Close()
	}
	s.files.Delete(fd)
	s.mu.Unlock()

	return result.OK()
}
