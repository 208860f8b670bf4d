package hostsys

import "github.com/saturnsim/core/api"

// grabString reads a NUL-terminated run of bytes from m starting at
// address, stopping early once max bytes have been collected (if max >= 0).
// Address arithmetic that walks past the top of the 32-bit address space
// before finding a terminator reports an overflow fault instead of
// wrapping, mirroring grab_string's checked_add.
func grabString(address uint32, m api.Memory, max int) (string, error) {
	var buf []byte

	for max < 0 || len(buf) < max {
		b, err := m.Get(address)
		if err != nil {
			return "", api.NewFaultError(address)
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)

		if address == 0xffffffff {
			return "", api.NewOverflowError(address)
		}
		address++
	}

	return string(buf), nil
}

func setV0(ex api.Executor, value uint32) {
	ex.WithRegisters(func(r api.Registers) { r.Set(api.V0, value) })
}

func getA0A1(ex api.Executor) (uint32, uint32) {
	var a, b uint32
	ex.WithRegisters(func(r api.Registers) {
		a = r.Get(api.A0)
		b = r.Get(api.A1)
	})
	return a, b
}

func getA0A1A2(ex api.Executor) (uint32, uint32, uint32) {
	var a, b, c uint32
	ex.WithRegisters(func(r api.Registers) {
		a = r.Get(api.A0)
		b = r.Get(api.A1)
		c = r.Get(api.A2)
	})
	return a, b, c
}

func getA0A1A2A3(ex api.Executor) (uint32, uint32, uint32, uint32) {
	var a, b, c, d uint32
	ex.WithRegisters(func(r api.Registers) {
		a = r.Get(api.A0)
		b = r.Get(api.A1)
		c = r.Get(api.A2)
		d = r.Get(api.A3)
	})
	return a, b, c, d
}

func setA0(ex api.Executor, value uint32) {
	ex.WithRegisters(func(r api.Registers) { r.Set(api.A0, value) })
}

func setA0A1(ex api.Executor, low, high uint32) {
	ex.WithRegisters(func(r api.Registers) {
		r.Set(api.A0, low)
		r.Set(api.A1, high)
	})
}

// addAddr adds offset to base, reporting false if the sum would overflow
// the 32-bit address space rather than wrapping.
func addAddr(base, offset uint32) (uint32, bool) {
	sum := uint64(base) + uint64(offset)
	if sum > 0xffffffff {
		return 0, false
	}
	return uint32(sum), true
}

// readBytesAt reads n bytes from guest memory starting at address, faulting
// with an overflow error if the address walks past the top of the address
// space, or the memory's own fault error if any byte is unreadable.
func readBytesAt(ex api.Executor, address uint32, n int) ([]byte, error) {
	buf := make([]byte, n)
	err := ex.WithMemory(func(m api.Memory) error {
		for i := 0; i < n; i++ {
			addr, ok := addAddr(address, uint32(i))
			if !ok {
				return api.NewOverflowError(address)
			}
			b, ferr := m.Get(addr)
			if ferr != nil {
				return ferr
			}
			buf[i] = b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// writeBytesAt writes data into guest memory starting at address, with the
// same overflow checking as readBytesAt.
func writeBytesAt(ex api.Executor, address uint32, data []byte) error {
	return ex.WithMemory(func(m api.Memory) error {
		for i, b := range data {
			addr, ok := addAddr(address, uint32(i))
			if !ok {
				return api.NewOverflowError(address)
			}
			if ferr := m.Set(addr, b); ferr != nil {
				return ferr
			}
		}
		return nil
	})
}
