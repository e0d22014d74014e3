package inject

import (
	"io"
)

// SensorBus emulates an image sensor behind an i2c-dev node. A write selects the register from
// its first RegWidth bytes; the following read returns the bytes stored for that register.
type SensorBus struct {
	RegWidth  int
	Registers map[uint32][]byte

	// MaxWrite and MaxRead truncate transfers when positive.
	MaxWrite int
	MaxRead  int

	Writes [][]byte
	Closes int

	selected uint32
}

// Read returns the stored bytes for the selected register.
func (s *SensorBus) Read(p []byte) (int, error) {
	data, ok := s.Registers[s.selected]
	if !ok {
		return 0, io.EOF
	}
	n := copy(p, data)
	if s.MaxRead > 0 && n > s.MaxRead {
		n = s.MaxRead
	}
	return n, nil
}

// Write records p and selects the register it addresses.
func (s *SensorBus) Write(p []byte) (int, error) {
	n := len(p)
	if s.MaxWrite > 0 && n > s.MaxWrite {
		n = s.MaxWrite
	}
	s.Writes = append(s.Writes, append([]byte(nil), p[:n]...))
	var reg uint32
	for i := 0; i < s.RegWidth && i < n; i++ {
		reg = reg<<8 | uint32(p[i])
	}
	s.selected = reg
	return n, nil
}

// Close counts closes.
func (s *SensorBus) Close() error {
	s.Closes++
	return nil
}

// Fd returns an invalid descriptor; address binding against it must be a no-op.
func (s *SensorBus) Fd() uintptr {
	return ^uintptr(0)
}
