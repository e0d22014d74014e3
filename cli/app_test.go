package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/ipcam/camhal/bus"
	"github.com/ipcam/camhal/hal"
	"github.com/ipcam/camhal/testutils"
)

type testBoard struct {
	configPath string
	devicePath string
}

// newTestBoard lays out a Grain-Media board under a temporary root with a regular file standing
// in for the I2C device.
func newTestBoard(t *testing.T, files map[string]string) testBoard {
	t.Helper()
	root := testutils.FakeRoot(t, files)
	device := filepath.Join(t.TempDir(), "i2c-0")
	test.That(t, os.WriteFile(device, []byte{0x30, 0x08, 0x5a, 0xa5}, 0o600), test.ShouldBeNil)

	configPath := filepath.Join(t.TempDir(), "camhal.yaml")
	conf := fmt.Sprintf("root: %s\ni2c_device: %s\nlog_level: error\n", root, device)
	test.That(t, os.WriteFile(configPath, []byte(conf), 0o600), test.ShouldBeNil)
	return testBoard{configPath: configPath, devicePath: device}
}

var gmFiles = map[string]string{
	"proc/cpuinfo":          "Processor\t: FA626TE rev 1 (v5l)\nHardware\t: GM8136\n",
	"proc/meminfo":          "MemTotal:          65536 kB\nMemFree:           10240 kB\n",
	"proc/frammap/ddr_info": "DDR size : 0x2000000\n",
}

func run(t *testing.T, board testBoard, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut)
	err := a.Run(append([]string{"camhal", "--config", board.configPath}, args...))
	return out.String(), errOut.String(), err
}

func TestRAMAction(t *testing.T) {
	t.Run("media and kernel", func(t *testing.T) {
		out, _, err := run(t, newTestBoard(t, gmFiles), "ram")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldEqual, "media: 32MiB\ntotal: 96MiB\ninstalled: 128MiB\n")
	})

	t.Run("unknown chip falls back to kernel memory", func(t *testing.T) {
		out, _, err := run(t, newTestBoard(t, map[string]string{
			"proc/meminfo": "MemTotal:          65536 kB\n",
		}), "ram")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldEqual, "media: none\ntotal: 64MiB\ninstalled: 64MiB\n")
	})
}

func TestDetectAction(t *testing.T) {
	out, _, err := run(t, newTestBoard(t, gmFiles), "detect")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "backend: gm")
	test.That(t, out, test.ShouldContainSubstring, "alias: GM")
	test.That(t, out, test.ShouldContainSubstring, "vendor: Grain-Media")
	test.That(t, out, test.ShouldContainSubstring, "- read_register")
	test.That(t, out, test.ShouldContainSubstring, "media_kb: 32768")
	test.That(t, out, test.ShouldNotContainSubstring, "read_temperature")
	test.That(t, out, test.ShouldNotContainSubstring, "ethernet")
}

func TestTempAction(t *testing.T) {
	_, _, err := run(t, newTestBoard(t, gmFiles), "temp")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, hal.ErrUnsupported), test.ShouldBeTrue)
}

func TestSensorAction(t *testing.T) {
	out, _, err := run(t, newTestBoard(t, gmFiles), "sensor")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "VENDOR")
	test.That(t, out, test.ShouldContainSubstring, "| Sony ")
	test.That(t, out, test.ShouldContainSubstring, "| 0x34 ")
	test.That(t, out, test.ShouldContainSubstring, "| 0x005a ")
}

func TestLogFile(t *testing.T) {
	board := newTestBoard(t, gmFiles)
	logPath := filepath.Join(t.TempDir(), "camhal.log")
	conf, err := os.ReadFile(board.configPath)
	test.That(t, err, test.ShouldBeNil)
	conf = append(conf, []byte("log_file: "+logPath+"\n")...)
	test.That(t, os.WriteFile(board.configPath, conf, 0o600), test.ShouldBeNil)

	_, _, err = run(t, board, "--debug", "ram")
	test.That(t, err, test.ShouldBeNil)
	contents, err := os.ReadFile(logPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, "HAL backend selected")
}

func TestRegisterActions(t *testing.T) {
	t.Run("i2cget", func(t *testing.T) {
		out, _, err := run(t, newTestBoard(t, gmFiles), "i2cget", "0x34", "0x3008")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldEqual, "0x5a\n")
	})

	t.Run("i2cget two byte data", func(t *testing.T) {
		out, _, err := run(t, newTestBoard(t, gmFiles), "i2cget", "--data-width", "2", "0x34", "0x3008")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldEqual, "0xa55a\n")
	})

	t.Run("i2cset sends only the register address", func(t *testing.T) {
		board := newTestBoard(t, gmFiles)
		_, _, err := run(t, board, "i2cset", "--data-width", "2", "0x34", "0x0100")
		test.That(t, err, test.ShouldBeNil)
		contents, err := os.ReadFile(board.devicePath)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, contents, test.ShouldResemble, []byte{0x01, 0x00, 0x5a, 0xa5})
	})

	t.Run("i2cset refuses a data value", func(t *testing.T) {
		board := newTestBoard(t, gmFiles)
		_, _, err := run(t, board, "i2cset", "--reg-width", "1", "0x34", "0x12", "0x77")
		test.That(t, err, test.ShouldEqual, errValueNotTransmitted)
		contents, err := os.ReadFile(board.devicePath)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, contents, test.ShouldResemble, []byte{0x30, 0x08, 0x5a, 0xa5})
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, _, err := run(t, newTestBoard(t, gmFiles), "i2cget", "0x34")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "expected 2 arguments")
	})

	t.Run("invalid width", func(t *testing.T) {
		_, _, err := run(t, newTestBoard(t, gmFiles), "i2cget", "--reg-width", "3", "0x34", "0x3008")
		test.That(t, errors.Is(err, bus.ErrInvalidWidth), test.ShouldBeTrue)
	})

	t.Run("address out of range", func(t *testing.T) {
		_, _, err := run(t, newTestBoard(t, gmFiles), "i2cget", "0x134", "0x3008")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "one byte")
	})

	t.Run("missing device", func(t *testing.T) {
		board := newTestBoard(t, gmFiles)
		test.That(t, os.Remove(board.devicePath), test.ShouldBeNil)
		_, _, err := run(t, board, "i2cget", "0x34", "0x3008")
		test.That(t, errors.Is(err, bus.ErrBusUnavailable), test.ShouldBeTrue)
	})
}
