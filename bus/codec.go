package bus

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Transaction is one register access: the register address and its width, the width of the
// data, and for writes the data value.
type Transaction struct {
	Reg       uint32
	RegWidth  int
	DataWidth int
	Data      uint32
}

// Validate checks that both widths are 1 or 2.
func (tx Transaction) Validate() error {
	if !validWidth(tx.RegWidth) {
		return errors.Wrapf(ErrInvalidWidth, "register width %d", tx.RegWidth)
	}
	if !validWidth(tx.DataWidth) {
		return errors.Wrapf(ErrInvalidWidth, "data width %d", tx.DataWidth)
	}
	return nil
}

func validWidth(w int) bool {
	return w == 1 || w == 2
}

// EncodeAddress returns the register address prefix: one byte, or two bytes high byte first.
func EncodeAddress(reg uint32, regWidth int) []byte {
	if regWidth == 2 {
		return []byte{byte(reg >> 8), byte(reg)}
	}
	return []byte{byte(reg)}
}

// DecodeData assembles a received value. Two-byte values arrive low byte first.
func DecodeData(buf []byte, dataWidth int) uint32 {
	if dataWidth == 2 {
		return uint32(buf[0]) | uint32(buf[1])<<8
	}
	return uint32(buf[0])
}

// WriteRegister frames tx into a DataWidth-byte buffer starting with the address prefix and
// transmits it in a single write.
func WriteRegister(w io.Writer, tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	buf := make([]byte, tx.DataWidth)
	copy(buf, EncodeAddress(tx.Reg, tx.RegWidth))
	n, err := w.Write(buf)
	if n != len(buf) {
		return multierr.Append(
			errors.Wrapf(ErrShortWrite, "register 0x%x: wrote %d of %d bytes", tx.Reg, n, len(buf)), err)
	}
	return err
}

// ReadRegister transmits the address prefix of tx and then receives DataWidth bytes.
func ReadRegister(rw io.ReadWriter, tx Transaction) (uint32, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	prefix := EncodeAddress(tx.Reg, tx.RegWidth)
	n, err := rw.Write(prefix)
	if n != len(prefix) {
		return 0, multierr.Append(
			errors.Wrapf(ErrShortWrite, "register 0x%x: wrote %d of %d bytes", tx.Reg, n, len(prefix)), err)
	}
	if err != nil {
		return 0, err
	}

	buf := make([]byte, tx.DataWidth)
	n, err = rw.Read(buf)
	if n != len(buf) {
		return 0, multierr.Append(
			errors.Wrapf(ErrShortRead, "register 0x%x: read %d of %d bytes", tx.Reg, n, len(buf)), err)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	return DecodeData(buf, tx.DataWidth), nil
}
