// Package sensor finds the image sensor attached to the SoC by walking the active backend's
// candidate addresses and reading each sensor vendor's chip ID register.
package sensor

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/ipcam/camhal/bus"
	"github.com/ipcam/camhal/hal"
	"github.com/ipcam/camhal/logging"
)

// Detection is a sensor that answered its ID register.
type Detection struct {
	Vendor string `yaml:"vendor"`
	Addr   uint8  `yaml:"addr"`
	ID     uint32 `yaml:"id"`
}

func (d Detection) String() string {
	return fmt.Sprintf("%s@0x%02x id=0x%04x", d.Vendor, d.Addr, d.ID)
}

// idRegisters is the chip ID register of each sensor vendor.
var idRegisters = map[string]bus.Transaction{
	hal.SensorSony:       {Reg: 0x3008, RegWidth: 2, DataWidth: 1},
	hal.SensorSmartSens:  {Reg: 0x3107, RegWidth: 2, DataWidth: 2},
	hal.SensorOnSemi:     {Reg: 0x3000, RegWidth: 2, DataWidth: 2},
	hal.SensorOmniVision: {Reg: 0x300a, RegWidth: 2, DataWidth: 2},
	hal.SensorGalaxyCore: {Reg: 0xf0, RegWidth: 1, DataWidth: 2},
	hal.SensorSOI:        {Reg: 0x0a, RegWidth: 1, DataWidth: 2},
}

// absent reports whether a value read back is what a floating or pulled bus returns.
func absent(id uint32, dataWidth int) bool {
	if id == 0 {
		return true
	}
	if dataWidth == 2 {
		return id == 0xffff
	}
	return id == 0xff
}

// Probe reads the ID register at every candidate address of the bound backend. The bus is opened
// and closed around each attempt. Failures at individual addresses are only returned when no
// sensor was found; at most one detection is reported per address.
func Probe(ctx context.Context, logger logging.Logger, ops *hal.Ops) ([]Detection, error) {
	if !ops.Has(hal.CapOpenI2C) || !ops.Has(hal.CapReadRegister) {
		return nil, hal.ErrUnsupported
	}
	candidates := lo.Filter(ops.SensorAddrs(), func(entry hal.SensorAddrs, _ int) bool {
		_, ok := idRegisters[entry.Vendor]
		return ok
	})

	var (
		found []Detection
		errs  error
	)
	for _, entry := range candidates {
		tx := idRegisters[entry.Vendor]
		for _, addr := range entry.Addrs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			id, err := readID(logger, ops, addr, tx)
			if errors.Is(err, bus.ErrBusUnavailable) {
				return nil, err
			}
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "%s at 0x%02x", entry.Vendor, addr))
				continue
			}
			if absent(id, tx.DataWidth) {
				continue
			}
			d := Detection{Vendor: entry.Vendor, Addr: addr, ID: id}
			logger.Debugw("sensor answered", "vendor", d.Vendor, "addr", fmt.Sprintf("0x%02x", addr), "id", id)
			found = append(found, d)
		}
	}
	if len(found) == 0 && errs != nil {
		return nil, errs
	}
	return lo.UniqBy(found, func(d Detection) uint8 { return d.Addr }), nil
}

func readID(logger logging.Logger, ops *hal.Ops, addr uint8, tx bus.Transaction) (uint32, error) {
	h, err := ops.OpenI2C()
	if err != nil {
		return 0, err
	}
	defer func() {
		if !ops.Close(h) {
			logger.Warnw("failed to close sensor bus", "addr", fmt.Sprintf("0x%02x", addr))
		}
	}()
	return ops.ReadRegister(h, addr, tx)
}
