//go:build linux

package bus

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// i2cSlaveForce is I2C_SLAVE_FORCE from linux/i2c-dev.h.
const i2cSlaveForce = 0x0706

// SetSlaveForce binds addr with the I2C_SLAVE_FORCE ioctl, which succeeds even when a kernel
// driver already claims the address.
func SetSlaveForce(h Handle, addr uint8) error {
	if err := unix.IoctlSetInt(int(h.Fd()), i2cSlaveForce, int(addr>>1)); err != nil {
		return errors.Wrapf(err, "I2C_SLAVE_FORCE 0x%02x", addr)
	}
	return nil
}
