package hal

import (
	"regexp"

	"github.com/ipcam/camhal/bus"
	"github.com/ipcam/camhal/sysinfo"
)

// Sensor vendor tags used in the candidate address tables.
const (
	SensorSony       = "Sony"
	SensorSmartSens  = "SmartSens"
	SensorOnSemi     = "OnSemi"
	SensorOmniVision = "OmniVision"
	SensorGalaxyCore = "GalaxyCore"
	SensorSOI        = "SOI"
)

// SensorAddrs lists, in probe order, the bus addresses a sensor vendor's parts may answer on.
// Addresses are in their left-shifted 8-bit form.
type SensorAddrs struct {
	Vendor string
	Addrs  []uint8
}

// A Backend is the implementation of the hardware operations for one chip family. Backends are
// package-level values; selection binds one of them into an Ops.
type Backend struct {
	Name string
	// Short is the manufacturer alias reported unless a selection rule overrides it.
	Short       string
	SensorAddrs []SensorAddrs

	I2CDevice string
	// SPIDevice is empty when the family has no SPI sensor bus.
	SPIDevice string

	ChangeAddress bus.AddressSetter

	MediaMem *mediaSource
	// Thermal is nil when the family exposes no temperature source.
	Thermal *thermalSource

	Ethernet bool
	Cleanup  func()
}

// textSource is a value scraped from the first line of a pseudo-file matching pattern.
type textSource struct {
	path    string
	pattern *regexp.Regexp
}

func (s *textSource) read(root sysinfo.Root) (string, error) {
	return root.RegexLine(s.path, s.pattern)
}

// mediaSource reports media RAM either as decimal KB or, when hexBytes is set, as a hexadecimal
// byte count.
type mediaSource struct {
	textSource
	hexBytes bool
}

// thermalSource is a temperature reading that gives degrees Celsius once divided by divisor. A
// zero divisor means the source already reports Celsius.
type thermalSource struct {
	textSource
	divisor float64
}

func noCleanup() {}
