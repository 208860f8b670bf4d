// Package filetable implements FileTable: a descriptor-keyed map of open
// host files. Grounded on wazero's internal/sys.FileTable, but unlike that
// table this one never recycles a freed key: descriptors must stay strictly
// monotonic and never reused, to prevent ABA confusion on the guest side.
package filetable

import "os"

// FirstDescriptor is the first descriptor handed out. 0, 1, and 2 are
// reserved for stdin/stdout/stderr but this table does not route to them
// reads/writes against them simply miss rather than routing to stdio.
const FirstDescriptor uint32 = 3

// Entry is one open file and the guest filename it was opened under (Name is
// kept mostly for diagnostics); reads/writes are dispatched straight against
// File.
type Entry struct {
	File *os.File
	Name string
}

// Table maps descriptors to open files.
type Table struct {
	next  uint32
	files map[uint32]*Entry
}

// New creates an empty Table, with the next descriptor handed out starting
// at FirstDescriptor.
func New() *Table {
	return &Table{
		next:  FirstDescriptor,
		files: make(map[uint32]*Entry),
	}
}

// Insert hands out the next descriptor for f and returns it. Descriptors
// are never reused even after Delete.
func (t *Table) Insert(f *os.File, name string) uint32 {
	fd := t.next
	t.next++
	t.files[fd] = &Entry{File: f, Name: name}
	return fd
}

// Lookup returns the entry for fd, if any.
func (t *Table) Lookup(fd uint32) (*Entry, bool) {
	e, ok := t.files[fd]
	return e, ok
}

// Delete removes fd from the table. It is a no-op if fd is absent.
func (t *Table) Delete(fd uint32) {
	delete(t.files, fd)
}

// Len reports how many descriptors are currently open.
func (t *Table) Len() int { return len(t.files) }

// CloseAll closes every open file, for use during program teardown.
func (t *Table) CloseAll() {
	for fd, e := range t.files {
		e.File.Close()
		delete(t.files, fd)
	}
}
