package bus

// AddressSetter binds the target device address to an open handle. Addresses are 7-bit values
// stored left-shifted by one, as they appear on the wire.
type AddressSetter func(h Handle, addr uint8) error

// SetAddressNoop is the AddressSetter for buses that carry the address in every transaction. It
// always succeeds.
func SetAddressNoop(Handle, uint8) error {
	return nil
}
