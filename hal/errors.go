package hal

import (
	"github.com/pkg/errors"

	"github.com/ipcam/camhal/bus"
)

var (
	// ErrUnknownVendor is returned by Select when no rule matches the detected manufacturer. The
	// Ops returned alongside it has every slot unbound.
	ErrUnknownVendor = errors.New("unknown_vendor")
	// ErrUnsupported is returned when an unbound slot is invoked.
	ErrUnsupported = bus.ErrUnsupported
)
