// Package bus offers the vendor-independent primitives for talking to an image sensor over an
// I2C or SPI character device, and the framing of single register transactions.
package bus

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrBusUnavailable is returned when a bus device node is missing or cannot be opened. Callers
	// may treat the sensor behind it as absent.
	ErrBusUnavailable = errors.New("bus_unavailable")
	// ErrShortWrite is returned when fewer bytes than framed were transmitted.
	ErrShortWrite = errors.New("short_write")
	// ErrShortRead is returned when fewer bytes than requested were received.
	ErrShortRead = errors.New("short_read")
	// ErrInvalidWidth is returned for register or data widths other than 1 or 2.
	ErrInvalidWidth = errors.New("invalid_width")
	// ErrUnsupported is returned by operations the platform cannot perform.
	ErrUnsupported = errors.New("unsupported")
)

// Handle is an open bus. It MUST be closed by whoever opened it, on every exit path.
type Handle interface {
	io.ReadWriteCloser
	Fd() uintptr
}

// Device is a bus character device opened read-write.
type Device struct {
	*os.File
}

// Open opens the device node at path read-write. Any failure is reported as ErrBusUnavailable.
func Open(path string) (*Device, error) {
	//nolint:gosec
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrBusUnavailable, "open %s: %v", path, err)
	}
	return &Device{File: f}, nil
}

// Close closes h and reports whether the close succeeded. A nil handle is not closed.
func Close(h Handle) bool {
	if h == nil {
		return false
	}
	return h.Close() == nil
}
