package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/ipcam/camhal/logging"
)

func TestConfigValidate(t *testing.T) {
	validConfig := Config{}
	test.That(t, validConfig.Validate("path"), test.ShouldBeNil)

	validConfig.Root = "relative/root"
	err := validConfig.Validate("path")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"path"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "root")

	validConfig.Root = "/mnt/target"
	validConfig.I2CDevice = "i2c-1"
	err = validConfig.Validate("path")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "i2c_device")

	validConfig.I2CDevice = "/dev/i2c-1"
	validConfig.LogLevel = "chatty"
	err = validConfig.Validate("path")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "chatty")

	validConfig.LogLevel = "debug"
	test.That(t, validConfig.Validate("path"), test.ShouldBeNil)

	validConfig.LogFile = "camhal.log"
	err = validConfig.Validate("path")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "log_file")
}

func TestFromReader(t *testing.T) {
	conf, err := FromReader("inline", strings.NewReader("root: /mnt/target\ni2c_device: /dev/i2c-1\nlog_level: warn\n"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, &Config{Root: "/mnt/target", I2CDevice: "/dev/i2c-1", LogLevel: "warn"})
	test.That(t, conf.Level(false), test.ShouldEqual, logging.WARN)
	test.That(t, conf.Level(true), test.ShouldEqual, logging.DEBUG)

	env := conf.Env(logging.NewTestLogger(t))
	test.That(t, string(env.Root), test.ShouldEqual, "/mnt/target")
	test.That(t, env.I2CDevice, test.ShouldEqual, "/dev/i2c-1")

	_, err = FromReader("inline", strings.NewReader("bogus: true\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "bogus")

	_, err = FromReader("/etc/camhal.yaml", strings.NewReader("root: relative/root\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"/etc/camhal.yaml"`)

	conf, err = FromReader("empty", strings.NewReader(""))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, &Config{})
	test.That(t, conf.Level(false), test.ShouldEqual, logging.INFO)
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camhal.yaml")
	test.That(t, os.WriteFile(path, []byte("spi_device: /dev/spidev1.0\n"), 0o600), test.ShouldBeNil)

	conf, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.SPIDevice, test.ShouldEqual, "/dev/spidev1.0")

	_, err = Read(filepath.Join(t.TempDir(), "missing.yaml"))
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}
