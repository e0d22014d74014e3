//go:build !linux

package bus

// SetSlaveForce is not available outside Linux.
func SetSlaveForce(Handle, uint8) error {
	return ErrUnsupported
}
