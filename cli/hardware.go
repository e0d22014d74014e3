package cli

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"github.com/ipcam/camhal/bus"
	"github.com/ipcam/camhal/hal"
	"github.com/ipcam/camhal/sensor"
)

// DetectAction prints a YAML report of the identity, backend and hardware facts.
func DetectAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	report := map[string]any{
		"chip":    s.id,
		"backend": s.ops.Vendor(),
		"alias":   s.ops.ShortManufacturer(),
		"capabilities": lo.Map(s.ops.Capabilities(), func(cp hal.Capability, _ int) string {
			return cp.String()
		}),
	}
	media, total := s.ops.RAM()
	report["ram"] = map[string]uint64{"media_kb": media, "total_kb": total}

	if t, err := s.ops.Temperature(); err == nil && t != hal.TemperatureUnknown {
		report["temperature"] = t
	}
	if s.ops.Has(hal.CapDetectEthernet) {
		if err := s.ops.DetectEthernet(report); err != nil {
			warningf(c.App.ErrWriter, "ethernet detection failed: %v", err)
		}
	}
	if c.Bool(detectFlagHost) {
		info, err := host.InfoWithContext(c.Context)
		if err != nil {
			warningf(c.App.ErrWriter, "cannot read host information: %v", err)
		} else {
			report["host"] = map[string]any{
				"hostname": info.Hostname,
				"os":       info.OS,
				"kernel":   info.KernelVersion,
				"arch":     info.KernelArch,
				"uptime":   info.Uptime,
			}
		}
	}
	return writeYAML(c.App.Writer, report)
}

// RAMAction prints media and total RAM along with the total rounded up to a power of two.
func RAMAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	media, total := s.ops.RAM()
	if total == 0 {
		return errors.New("cannot determine RAM size")
	}
	if media == 0 {
		printf(c.App.Writer, "media: none")
	} else {
		printf(c.App.Writer, "media: %s", kbSize(media))
	}
	printf(c.App.Writer, "total: %s", kbSize(total))
	rounded := hal.RoundUpToPowerOfTwo(uint32((total + 1023) / 1024))
	printf(c.App.Writer, "installed: %s", units.BytesSize(float64(rounded)*units.MiB))
	return nil
}

func kbSize(kb uint64) string {
	return units.BytesSize(float64(kb) * units.KiB)
}

// TempAction prints the SoC temperature.
func TempAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	t, err := s.ops.TemperatureValue()
	if err != nil {
		return errors.Wrap(err, "cannot read temperature")
	}
	printf(c.App.Writer, "%s", t)
	return nil
}

// SensorAction probes every candidate sensor address of the active backend.
func SensorAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	found, err := sensor.Probe(c.Context, s.logger, s.ops)
	if err != nil {
		return errors.Wrap(err, "sensor probe failed")
	}
	if len(found) == 0 {
		printf(c.App.Writer, "no sensor found")
		return nil
	}
	printf(c.App.Writer, "%s", detectionTable(found))
	return nil
}

// detectionTable renders one row per detected sensor.
func detectionTable(found []sensor.Detection) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Vendor", "Address", "ID"})
	for i, d := range found {
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", i+1),
			d.Vendor,
			fmt.Sprintf("0x%02x", d.Addr),
			fmt.Sprintf("0x%04x", d.ID),
		})
	}
	return t.Render()
}

// I2CGetAction reads one register from the sensor at the given 8-bit address.
func I2CGetAction(c *cli.Context) error {
	args, err := numericArgs(c, 2)
	if err != nil {
		return err
	}
	addr, tx, err := registerTarget(c, args)
	if err != nil {
		return err
	}
	return withSensorBus(c, func(s *session, h bus.Handle) error {
		v, err := s.ops.ReadRegister(h, addr, tx)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "0x%0*x", tx.DataWidth*2, v)
		return nil
	})
}

// errValueNotTransmitted rejects an i2cset data value, which a register write frame never carries.
var errValueNotTransmitted = errors.New("register write frames carry only the register address; a data value would not be transmitted")

// I2CSetAction sends a register write frame to the sensor at the given 8-bit address.
func I2CSetAction(c *cli.Context) error {
	if c.Args().Len() == 3 {
		return errValueNotTransmitted
	}
	args, err := numericArgs(c, 2)
	if err != nil {
		return err
	}
	addr, tx, err := registerTarget(c, args)
	if err != nil {
		return err
	}
	return withSensorBus(c, func(s *session, h bus.Handle) error {
		return s.ops.WriteRegister(h, addr, tx)
	})
}

func numericArgs(c *cli.Context, n int) ([]uint32, error) {
	if c.Args().Len() != n {
		return nil, errors.Errorf("expected %d arguments, got %d. use --help for more information", n, c.Args().Len())
	}
	out := make([]uint32, 0, n)
	for _, a := range c.Args().Slice() {
		v, err := cast.ToUint32E(a)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", a)
		}
		out = append(out, v)
	}
	return out, nil
}

func registerTarget(c *cli.Context, args []uint32) (uint8, bus.Transaction, error) {
	if args[0] > 0xff {
		return 0, bus.Transaction{}, errors.Errorf("address 0x%x does not fit in one byte", args[0])
	}
	tx := bus.Transaction{
		Reg:       args[1],
		RegWidth:  c.Int(registerFlagRegWidth),
		DataWidth: c.Int(registerFlagDataWidth),
	}
	if err := tx.Validate(); err != nil {
		return 0, bus.Transaction{}, err
	}
	return uint8(args[0]), tx, nil
}

func withSensorBus(c *cli.Context, fn func(s *session, h bus.Handle) error) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	h, err := s.ops.OpenI2C()
	if err != nil {
		return err
	}
	defer func() {
		if !s.ops.Close(h) {
			warningf(c.App.ErrWriter, "failed to close the sensor bus")
		}
	}()
	return fn(s, h)
}
