package hal

import (
	"regexp"

	"github.com/ipcam/camhal/bus"
)

var mmzTotal = &mediaSource{
	textSource: textSource{"/proc/media-mem", regexp.MustCompile(`total size=\s*([0-9]+)KB`)},
}

var hisi = &Backend{
	Name:  "hisi",
	Short: "HI",
	SensorAddrs: []SensorAddrs{
		{SensorSony, []uint8{0x34, 0x20}},
		{SensorSOI, []uint8{0x80}},
		{SensorOnSemi, []uint8{0x20, 0x30}},
		{SensorSmartSens, []uint8{0x60, 0x30}},
		{SensorOmniVision, []uint8{0x60, 0x6c, 0x42}},
		{SensorGalaxyCore, []uint8{0x6e, 0x52}},
	},
	I2CDevice:     "/dev/i2c-0",
	SPIDevice:     "/dev/spidev0.0",
	ChangeAddress: bus.SetSlaveForce,
	MediaMem:      mmzTotal,
	Ethernet:      true,
	Cleanup:       noCleanup,
}

var xm = &Backend{
	Name:  "xm",
	Short: "XM",
	SensorAddrs: []SensorAddrs{
		{SensorSony, []uint8{0x34}},
		{SensorSOI, []uint8{0x80}},
		{SensorOnSemi, []uint8{0x20}},
		{SensorSmartSens, []uint8{0x60, 0x30}},
		{SensorOmniVision, []uint8{0x6c}},
		{SensorGalaxyCore, []uint8{0x6e}},
	},
	I2CDevice:     "/dev/i2c-0",
	ChangeAddress: bus.SetSlaveForce,
	MediaMem:      mmzTotal,
	Cleanup:       noCleanup,
}

var sstar = &Backend{
	Name:  "sstar",
	Short: "SSC",
	SensorAddrs: []SensorAddrs{
		{SensorSony, []uint8{0x34}},
		{SensorSmartSens, []uint8{0x60, 0x30}},
		{SensorOmniVision, []uint8{0x6c}},
		{SensorGalaxyCore, []uint8{0x6e}},
		{SensorSOI, []uint8{0x80}},
	},
	I2CDevice:     "/dev/i2c-1",
	ChangeAddress: bus.SetSlaveForce,
	MediaMem: &mediaSource{
		textSource: textSource{
			"/proc/mi_modules/mi_sys_mma/mma_heap_name0",
			regexp.MustCompile(`length\s*[:=]\s*(0x[0-9a-fA-F]+)`),
		},
		hexBytes: true,
	},
	Thermal: &thermalSource{
		textSource: textSource{
			"/sys/devices/virtual/mstar/msys/TEMP_R",
			regexp.MustCompile(`Temperature\s+(-?[0-9.]+)`),
		},
	},
	Cleanup: noCleanup,
}

var novatek = &Backend{
	Name:  "novatek",
	Short: "NT",
	SensorAddrs: []SensorAddrs{
		{SensorSony, []uint8{0x34}},
		{SensorSmartSens, []uint8{0x60}},
		{SensorOnSemi, []uint8{0x20}},
		{SensorOmniVision, []uint8{0x6c}},
		{SensorGalaxyCore, []uint8{0x6e}},
	},
	I2CDevice:     "/dev/i2c-0",
	ChangeAddress: bus.SetSlaveForce,
	MediaMem: &mediaSource{
		textSource: textSource{
			"/proc/hdal/comm/info",
			regexp.MustCompile(`DDR[0-9]:.+size = ([0-9A-Fx]+)`),
		},
		hexBytes: true,
	},
	// The thermal zone reports millidegrees Celsius.
	Thermal: &thermalSource{
		textSource: textSource{
			"/sys/class/thermal/thermal_zone0/temp",
			regexp.MustCompile(`(.+)`),
		},
		divisor: 1000,
	},
	Ethernet: true,
	Cleanup:  noCleanup,
}

// Grain Media sensor buses take the address with every transfer, so binding is a no-op.
var gm = &Backend{
	Name:  "gm",
	Short: "GM",
	SensorAddrs: []SensorAddrs{
		{SensorSony, []uint8{0x34}},
		{SensorOmniVision, []uint8{0x60, 0x6c}},
		{SensorGalaxyCore, []uint8{0x6e}},
	},
	I2CDevice:     "/dev/i2c-0",
	ChangeAddress: bus.SetAddressNoop,
	MediaMem: &mediaSource{
		textSource: textSource{
			"/proc/frammap/ddr_info",
			regexp.MustCompile(`DDR size\s*:\s*(0x[0-9A-Fa-f]+)`),
		},
		hexBytes: true,
	},
	Cleanup: noCleanup,
}

var fh = &Backend{
	Name:  "fh",
	Short: "FH",
	SensorAddrs: []SensorAddrs{
		{SensorSony, []uint8{0x34}},
		{SensorSmartSens, []uint8{0x60}},
		{SensorOmniVision, []uint8{0x6c}},
		{SensorGalaxyCore, []uint8{0x6e}},
	},
	I2CDevice:     "/dev/i2c-0",
	ChangeAddress: bus.SetSlaveForce,
	MediaMem: &mediaSource{
		textSource: textSource{
			"/proc/driver/vmm",
			regexp.MustCompile(`total size\s*=\s*([0-9]+)KB`),
		},
	},
	Cleanup: noCleanup,
}
