package hal

import (
	"github.com/ipcam/camhal/bus"
	"github.com/ipcam/camhal/logging"
	"github.com/ipcam/camhal/sysinfo"
)

// Capability names one slot of an Ops.
type Capability int

// The slots of an Ops.
const (
	CapOpenI2C Capability = iota
	CapOpenSPI
	CapClose
	CapReadRegister
	CapWriteRegister
	CapChangeAddress
	CapTemperature
	CapCleanup
	CapDetectEthernet
)

var capabilityNames = [...]string{
	CapOpenI2C:        "open_i2c",
	CapOpenSPI:        "open_spi",
	CapClose:          "close",
	CapReadRegister:   "read_register",
	CapWriteRegister:  "write_register",
	CapChangeAddress:  "change_address",
	CapTemperature:    "read_temperature",
	CapCleanup:        "cleanup",
	CapDetectEthernet: "detect_ethernet",
}

// AllCapabilities lists every slot in declaration order.
var AllCapabilities = []Capability{
	CapOpenI2C, CapOpenSPI, CapClose, CapReadRegister, CapWriteRegister,
	CapChangeAddress, CapTemperature, CapCleanup, CapDetectEthernet,
}

func (c Capability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return "unknown"
	}
	return capabilityNames[c]
}

// Env carries what a backend needs from its surroundings when it is bound.
type Env struct {
	Root   sysinfo.Root
	Logger logging.Logger

	// I2CDevice and SPIDevice override the backend's device nodes when set.
	I2CDevice string
	SPIDevice string

	// Open opens bus device nodes. Nil means bus.Open.
	Open func(path string) (bus.Handle, error)

	// Kernel supplies kernel-visible RAM. Nil means the process-wide KernelMem memo, or a memo over
	// Root's /proc when Root is set.
	Kernel *MemoKernel
}

// Ops is the operation set bound to the active backend. It is built once by Select and never
// modified afterwards, so it may be shared freely. Slots the backend lacks stay unbound and
// report ErrUnsupported; use Has to check first.
type Ops struct {
	backend *Backend
	alias   string
	root    sysinfo.Root
	kernel  *MemoKernel
	logger  logging.Logger

	openI2C        func() (bus.Handle, error)
	openSPI        func() (bus.Handle, error)
	closeHandle    func(bus.Handle) bool
	readRegister   func(bus.Handle, bus.Transaction) (uint32, error)
	writeRegister  func(bus.Handle, bus.Transaction) error
	changeAddress  bus.AddressSetter
	temperature    func() float32
	cleanup        func()
	detectEthernet func(map[string]any) error
}

func newUnboundOps(env Env) *Ops {
	logger := env.Logger
	if logger == nil {
		logger = logging.NewLogger("hal")
	}
	kernel := env.Kernel
	if kernel == nil {
		if env.Root == "" {
			kernel = processKernel
		} else {
			kernel = NewMemoKernel(meminfoParser(env.Root))
		}
	}
	return &Ops{root: env.Root, kernel: kernel, logger: logger}
}

// bind fills every slot the backend supports.
func (b *Backend) bind(env Env, alias string) *Ops {
	ops := newUnboundOps(env)
	ops.backend = b
	ops.alias = alias

	open := env.Open
	if open == nil {
		open = openDevice
	}
	i2cPath := b.I2CDevice
	if env.I2CDevice != "" {
		i2cPath = env.I2CDevice
	}
	ops.openI2C = func() (bus.Handle, error) { return open(i2cPath) }

	if b.SPIDevice != "" {
		spiPath := b.SPIDevice
		if env.SPIDevice != "" {
			spiPath = env.SPIDevice
		}
		ops.openSPI = func() (bus.Handle, error) { return open(spiPath) }
	}

	ops.closeHandle = bus.Close
	ops.readRegister = func(h bus.Handle, tx bus.Transaction) (uint32, error) { return bus.ReadRegister(h, tx) }
	ops.writeRegister = func(h bus.Handle, tx bus.Transaction) error { return bus.WriteRegister(h, tx) }
	ops.changeAddress = b.ChangeAddress
	ops.cleanup = b.Cleanup

	// The thermal slot is only bound when the source exists now.
	if b.Thermal != nil && env.Root.Readable(b.Thermal.path) {
		ops.temperature = func() float32 { return readTemperature(ops.root, b.Thermal, ops.logger) }
	}
	if b.Ethernet {
		ops.detectEthernet = func(root map[string]any) error { return detectEthernet(ops.root, root) }
	}
	return ops
}

func openDevice(path string) (bus.Handle, error) {
	dev, err := bus.Open(path)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// Backend returns the bound backend, or nil when no vendor was selected.
func (o *Ops) Backend() *Backend {
	return o.backend
}

// Vendor returns the bound backend's name, or "" when no vendor was selected.
func (o *Ops) Vendor() string {
	if o.backend == nil {
		return ""
	}
	return o.backend.Name
}

// ShortManufacturer returns the manufacturer alias to display, after any override applied by
// the selection rule.
func (o *Ops) ShortManufacturer() string {
	return o.alias
}

// SensorAddrs returns the backend's candidate sensor address table. Callers must not modify it.
func (o *Ops) SensorAddrs() []SensorAddrs {
	if o.backend == nil {
		return nil
	}
	return o.backend.SensorAddrs
}

// Has reports whether the slot is bound.
func (o *Ops) Has(c Capability) bool {
	switch c {
	case CapOpenI2C:
		return o.openI2C != nil
	case CapOpenSPI:
		return o.openSPI != nil
	case CapClose:
		return o.closeHandle != nil
	case CapReadRegister:
		return o.readRegister != nil
	case CapWriteRegister:
		return o.writeRegister != nil
	case CapChangeAddress:
		return o.changeAddress != nil
	case CapTemperature:
		return o.temperature != nil
	case CapCleanup:
		return o.cleanup != nil
	case CapDetectEthernet:
		return o.detectEthernet != nil
	}
	return false
}

// Capabilities lists the bound slots.
func (o *Ops) Capabilities() []Capability {
	var caps []Capability
	for _, c := range AllCapabilities {
		if o.Has(c) {
			caps = append(caps, c)
		}
	}
	return caps
}

// OpenI2C opens the sensor I2C bus. The caller owns the handle and must Close it.
func (o *Ops) OpenI2C() (bus.Handle, error) {
	if o.openI2C == nil {
		return nil, ErrUnsupported
	}
	return o.openI2C()
}

// OpenSPI opens the sensor SPI bus. The caller owns the handle and must Close it.
func (o *Ops) OpenSPI() (bus.Handle, error) {
	if o.openSPI == nil {
		return nil, ErrUnsupported
	}
	return o.openSPI()
}

// Close releases a handle returned by OpenI2C or OpenSPI and reports whether that succeeded.
// It must be called once per handle.
func (o *Ops) Close(h bus.Handle) bool {
	if o.closeHandle == nil {
		return false
	}
	return o.closeHandle(h)
}

// ChangeAddress binds the sensor address to h.
func (o *Ops) ChangeAddress(h bus.Handle, addr uint8) error {
	if o.changeAddress == nil {
		return ErrUnsupported
	}
	return o.changeAddress(h, addr)
}

// ReadRegister binds addr and reads one register from it.
func (o *Ops) ReadRegister(h bus.Handle, addr uint8, tx bus.Transaction) (uint32, error) {
	if o.readRegister == nil || o.changeAddress == nil {
		return 0, ErrUnsupported
	}
	if err := o.changeAddress(h, addr); err != nil {
		return 0, err
	}
	return o.readRegister(h, tx)
}

// WriteRegister binds addr and writes one register on it.
func (o *Ops) WriteRegister(h bus.Handle, addr uint8, tx bus.Transaction) error {
	if o.writeRegister == nil || o.changeAddress == nil {
		return ErrUnsupported
	}
	if err := o.changeAddress(h, addr); err != nil {
		return err
	}
	return o.writeRegister(h, tx)
}

// Temperature returns the SoC temperature in degrees Celsius. A value that could not be parsed
// is reported as TemperatureUnknown rather than as an error.
func (o *Ops) Temperature() (float32, error) {
	if o.temperature == nil {
		return 0, ErrUnsupported
	}
	return o.temperature(), nil
}

// DetectEthernet adds the backend's ethernet facts to root.
func (o *Ops) DetectEthernet(root map[string]any) error {
	if o.detectEthernet == nil {
		return ErrUnsupported
	}
	return o.detectEthernet(root)
}

// Cleanup releases whatever the backend acquired during the process lifetime.
func (o *Ops) Cleanup() error {
	if o.cleanup == nil {
		return ErrUnsupported
	}
	o.cleanup()
	return nil
}
