package hal

import (
	"fmt"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/ipcam/camhal/bus"
)

var _ = i2c.Bus(&PeriphBus{})

// PeriphBus exposes an open sensor bus as a periph.io i2c.Bus, so periph device drivers can run
// on top of whichever backend is bound. Addresses passed to Tx are 7-bit, as periph expects.
type PeriphBus struct {
	ops    *Ops
	handle bus.Handle
}

// NewPeriphBus wraps h, which must have been opened through ops.
func NewPeriphBus(ops *Ops, h bus.Handle) *PeriphBus {
	return &PeriphBus{ops: ops, handle: h}
}

// Tx binds addr, writes w and then reads len(r) bytes.
func (b *PeriphBus) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7f {
		return errors.Errorf("10-bit address 0x%x is not supported", addr)
	}
	if err := b.ops.ChangeAddress(b.handle, uint8(addr<<1)); err != nil {
		return err
	}
	if len(w) > 0 {
		n, err := b.handle.Write(w)
		if n != len(w) {
			return errors.Wrapf(bus.ErrShortWrite, "wrote %d of %d bytes: %v", n, len(w), err)
		}
	}
	if len(r) > 0 {
		n, err := b.handle.Read(r)
		if n != len(r) {
			return errors.Wrapf(bus.ErrShortRead, "read %d of %d bytes: %v", n, len(r), err)
		}
	}
	return nil
}

// SetSpeed is not supported; bus timing belongs to the kernel driver.
func (b *PeriphBus) SetSpeed(physic.Frequency) error {
	return ErrUnsupported
}

func (b *PeriphBus) String() string {
	return fmt.Sprintf("camhal-%s", b.ops.Vendor())
}
