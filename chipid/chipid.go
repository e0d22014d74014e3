// Package chipid identifies the camera SoC a process is running on.
package chipid

import (
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ipcam/camhal/sysinfo"
)

// Manufacturer tags as reported by detection. Vendor selection matches on these exactly.
const (
	VendorHisi    = "HiSilicon"
	VendorGoke    = "Goke"
	VendorXM      = "Xiongmai"
	VendorSStar   = "SigmaStar"
	VendorNovatek = "Novatek"
	VendorGM      = "Grain-Media"
	VendorFH      = "Fullhan"
)

// ErrUnknownChip is returned when no detection rule recognises the running hardware.
var ErrUnknownChip = errors.New("unknown_chip")

// Identity describes the SoC and board. It is filled once by Detect and treated as read-only
// afterwards.
type Identity struct {
	Manufacturer      string `yaml:"vendor"`
	ChipName          string `yaml:"model"`
	Generation        int    `yaml:"generation,omitempty"`
	ShortManufacturer string `yaml:"-"`

	SystemID             string   `yaml:"system-id,omitempty"`
	SystemManufacturer   string   `yaml:"system-manufacturer,omitempty"`
	BoardID              string   `yaml:"board-id,omitempty"`
	BoardVersion         string   `yaml:"board-version,omitempty"`
	BoardManufacturer    string   `yaml:"board-manufacturer,omitempty"`
	BoardSpecific        string   `yaml:"board-specific,omitempty"`
	DeviceTreeCompatible []string `yaml:"compatible,omitempty"`
}

// FullName is the short manufacturer alias followed by the chip name, e.g. "HI3516EV300".
func (id Identity) FullName() string {
	return id.ShortManufacturer + id.ChipName
}

type rule struct {
	path         string
	pattern      *regexp.Regexp
	manufacturer string
	short        string
}

const (
	modelPath      = "/proc/device-tree/model"
	compatiblePath = "/proc/device-tree/compatible"
	cpuinfoPath    = "/proc/cpuinfo"
)

// Order matters: device-tree models are more specific than the cpuinfo Hardware line.
var rules = []rule{
	{modelPath, regexp.MustCompile(`Novatek ([A-Z]+[0-9]+)`), VendorNovatek, "NT"},
	{modelPath, regexp.MustCompile(`(SSC[0-9]+[A-Z]*)`), VendorSStar, "SSC"},
	{cpuinfoPath, regexp.MustCompile(`(?i)^Hardware\s*:\s*hi([0-9]{4}[a-z0-9]*)`), VendorHisi, "HI"},
	// Goke 7xxx parts are detected through the same path as HiSilicon and inherit its alias.
	{cpuinfoPath, regexp.MustCompile(`(?i)^Hardware\s*:\s*gk([0-9]{4}[a-z0-9]*)`), VendorGoke, "HI"},
	{cpuinfoPath, regexp.MustCompile(`(?i)^Hardware\s*:\s*xm([0-9]{3}[a-z0-9]*)`), VendorXM, "XM"},
	{cpuinfoPath, regexp.MustCompile(`(?i)^Hardware\s*:\s*fh([0-9]{4}[a-z0-9]*)`), VendorFH, "FH"},
	{cpuinfoPath, regexp.MustCompile(`(?i)^Hardware\s*:\s*gm([0-9]{4}[a-z0-9]*)`), VendorGM, "GM"},
}

var generationPattern = regexp.MustCompile(`V([0-9])00$`)

// Detect walks the detection rules against the pseudo-files under root and returns the first
// match.
func Detect(root sysinfo.Root) (Identity, error) {
	for _, r := range rules {
		name, err := root.RegexLine(r.path, r.pattern)
		if err != nil {
			continue
		}
		id := Identity{
			Manufacturer:      r.manufacturer,
			ChipName:          strings.ToUpper(name),
			ShortManufacturer: r.short,
		}
		if m := generationPattern.FindStringSubmatch(id.ChipName); m != nil {
			//nolint:errcheck
			id.Generation, _ = strconv.Atoi(m[1])
		}
		fillBoard(root, &id)
		return id, nil
	}
	return Identity{}, ErrUnknownChip
}

func fillBoard(root sysinfo.Root, id *Identity) {
	if model, err := os.ReadFile(root.Path(modelPath)); err == nil {
		id.BoardID = string(bytes.TrimRight(model, "\x00\n"))
	}
	if compat, err := os.ReadFile(root.Path(compatiblePath)); err == nil {
		// Remove any initial or final null bytes, then split on the rest of them.
		trimmed := strings.Trim(string(compat), "\x00")
		if trimmed != "" {
			id.DeviceTreeCompatible = strings.Split(trimmed, "\x00")
		}
	}
}
