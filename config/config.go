// Package config defines the camhal configuration file.
package config

import (
	"path/filepath"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/ipcam/camhal/hal"
	"github.com/ipcam/camhal/logging"
	"github.com/ipcam/camhal/sysinfo"
)

// DefaultPath is where the CLI looks for a configuration file when none is given.
const DefaultPath = "/etc/camhal.yaml"

// A Config overrides where camhal finds the hardware it drives.
type Config struct {
	// Root is prefixed to every /proc, /sys and device-tree path. Empty means "/".
	Root string `yaml:"root,omitempty"`
	// I2CDevice and SPIDevice replace the backend's sensor bus nodes.
	I2CDevice string `yaml:"i2c_device,omitempty"`
	SPIDevice string `yaml:"spi_device,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	// LogFile, when set, receives a rotated JSON copy of the log.
	LogFile string `yaml:"log_file,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Root != "" && !filepath.IsAbs(conf.Root) {
		return goutils.NewConfigValidationError(path, errors.Errorf("root %q must be an absolute path", conf.Root))
	}
	for field, dev := range map[string]string{
		"i2c_device": conf.I2CDevice,
		"spi_device": conf.SPIDevice,
		"log_file":   conf.LogFile,
	} {
		if dev != "" && !filepath.IsAbs(dev) {
			return goutils.NewConfigValidationError(path, errors.Errorf("%s %q must be an absolute path", field, dev))
		}
	}
	if conf.LogLevel != "" {
		if _, err := logging.LevelFromString(conf.LogLevel); err != nil {
			return goutils.NewConfigValidationError(path, err)
		}
	}
	return nil
}

// Level returns the configured log level, INFO when unset or when debug is forced.
func (conf *Config) Level(debug bool) logging.Level {
	if debug {
		return logging.DEBUG
	}
	level, err := logging.LevelFromString(conf.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// SysRoot returns Root as a sysinfo.Root.
func (conf *Config) SysRoot() sysinfo.Root {
	return sysinfo.Root(conf.Root)
}

// Env builds the HAL environment described by the config.
func (conf *Config) Env(logger logging.Logger) hal.Env {
	return hal.Env{
		Root:      conf.SysRoot(),
		Logger:    logger,
		I2CDevice: conf.I2CDevice,
		SPIDevice: conf.SPIDevice,
	}
}
