package hal

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"

	"github.com/ipcam/camhal/logging"
	"github.com/ipcam/camhal/sysinfo"
)

// TemperatureUnknown is what a bound temperature slot returns when its source cannot be parsed.
// It conflates "parse failed" with a reading, so new capabilities should not copy it.
const TemperatureUnknown float32 = -237.0

func readTemperature(root sysinfo.Root, src *thermalSource, logger logging.Logger) float32 {
	raw, err := src.read(root)
	if err != nil {
		logger.Debugw("temperature source unreadable", "source", src.path, "error", err)
		return TemperatureUnknown
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		logger.Debugw("temperature source unparsable", "source", src.path, "value", raw)
		return TemperatureUnknown
	}
	if src.divisor != 0 {
		v /= src.divisor
	}
	return float32(v)
}

// TemperatureValue is Temperature as a physic.Temperature. The unknown sentinel is an error here.
func (o *Ops) TemperatureValue() (physic.Temperature, error) {
	c, err := o.Temperature()
	if err != nil {
		return 0, err
	}
	if c == TemperatureUnknown {
		return 0, errors.New("temperature unavailable")
	}
	return physic.ZeroCelsius + physic.Temperature(float64(c)*float64(physic.Celsius)), nil
}
