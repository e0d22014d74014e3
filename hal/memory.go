package hal

import (
	"math/bits"
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/procfs"

	"github.com/ipcam/camhal/sysinfo"
)

// MemoKernel memoizes kernel-visible RAM in KB. The parse function runs at most once; its result
// is kept even when it is zero.
type MemoKernel struct {
	once  sync.Once
	parse func() uint64
	total uint64
}

// NewMemoKernel returns a memo over parse.
func NewMemoKernel(parse func() uint64) *MemoKernel {
	return &MemoKernel{parse: parse}
}

// Total returns the memoized value, parsing on first use.
func (m *MemoKernel) Total() uint64 {
	m.once.Do(func() {
		m.total = m.parse()
	})
	return m.total
}

var processKernel = NewMemoKernel(meminfoParser(""))

// KernelMem returns MemTotal from /proc/meminfo in KB, read once per process.
func KernelMem() uint64 {
	return processKernel.Total()
}

func meminfoParser(root sysinfo.Root) func() uint64 {
	return func() uint64 {
		fs, err := procfs.NewFS(root.Path(procfs.DefaultMountPoint))
		if err != nil {
			return 0
		}
		info, err := fs.Meminfo()
		if err != nil || info.MemTotal == nil {
			return 0
		}
		return *info.MemTotal
	}
}

// RAM returns the vendor-reserved media RAM and the total RAM, both in KB. When the backend
// reports no media RAM the total is kernel-visible RAM alone.
func (o *Ops) RAM() (media, total uint64) {
	media = o.mediaMem()
	if media == 0 {
		return 0, o.kernel.Total()
	}
	return media, media + o.kernel.Total()
}

func (o *Ops) mediaMem() uint64 {
	if o.backend == nil || o.backend.MediaMem == nil {
		return 0
	}
	src := o.backend.MediaMem
	raw, err := src.read(o.root)
	if err != nil {
		o.logger.Debugw("media memory unavailable", "source", src.path, "error", err)
		return 0
	}
	if src.hexBytes {
		v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(raw), "0x"), 16, 64)
		if err != nil {
			return 0
		}
		return v / 1024
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// maxPowerOfTwo is the largest power of two a uint32 holds.
const maxPowerOfTwo = 1 << 31

// RoundUpToPowerOfTwo returns the smallest power of two not below n. Zero rounds up to one. Values
// above 1<<31 have no such power in a uint32 and return 0; callers pass sizes in MB or KB, far
// below that.
func RoundUpToPowerOfTwo(n uint32) uint32 {
	switch {
	case n == 0:
		return 1
	case n > maxPowerOfTwo:
		return 0
	}
	return 1 << bits.Len32(n-1)
}
