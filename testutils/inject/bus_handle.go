package inject

import (
	"github.com/ipcam/camhal/bus"
)

// Handle is an injected bus.Handle.
type Handle struct {
	bus.Handle
	ReadFunc  func(p []byte) (int, error)
	WriteFunc func(p []byte) (int, error)
	CloseFunc func() error
	FdFunc    func() uintptr
}

// Read calls the injected Read or the real version.
func (h *Handle) Read(p []byte) (int, error) {
	if h.ReadFunc == nil {
		return h.Handle.Read(p)
	}
	return h.ReadFunc(p)
}

// Write calls the injected Write or the real version.
func (h *Handle) Write(p []byte) (int, error) {
	if h.WriteFunc == nil {
		return h.Handle.Write(p)
	}
	return h.WriteFunc(p)
}

// Close calls the injected Close or the real version.
func (h *Handle) Close() error {
	if h.CloseFunc == nil {
		return h.Handle.Close()
	}
	return h.CloseFunc()
}

// Fd calls the injected Fd or the real version.
func (h *Handle) Fd() uintptr {
	if h.FdFunc == nil {
		return h.Handle.Fd()
	}
	return h.FdFunc()
}
