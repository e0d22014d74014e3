package hal

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ipcam/camhal/chipid"
	"github.com/ipcam/camhal/logging"
)

// A selectionRule maps a manufacturer tag, optionally narrowed by a predicate on the identity,
// to a backend and an optional alias override.
type selectionRule struct {
	manufacturer string
	when         func(chipid.Identity) bool
	backend      *Backend
	alias        string
}

func chipNamePrefix(prefix string) func(chipid.Identity) bool {
	return func(id chipid.Identity) bool {
		return strings.HasPrefix(id.ChipName, prefix)
	}
}

// Rules are tried in order and the first match wins. Goke 7xxx parts are HiSilicon designs and
// run on the hisi backend under their own alias.
var selectionRules = []selectionRule{
	{manufacturer: chipid.VendorHisi, backend: hisi},
	{manufacturer: chipid.VendorGoke, when: chipNamePrefix("7"), backend: hisi, alias: "GK"},
	{manufacturer: chipid.VendorXM, backend: xm},
	{manufacturer: chipid.VendorSStar, backend: sstar},
	{manufacturer: chipid.VendorNovatek, backend: novatek},
	{manufacturer: chipid.VendorGM, backend: gm},
	{manufacturer: chipid.VendorFH, backend: fh},
}

func matchRule(id chipid.Identity) (selectionRule, bool) {
	for _, r := range selectionRules {
		if r.manufacturer != id.Manufacturer {
			continue
		}
		if r.when != nil && !r.when(id) {
			continue
		}
		return r, true
	}
	return selectionRule{}, false
}

// Select binds the backend for id. When nothing matches it returns ErrUnknownVendor together
// with an Ops whose slots are all unbound; that Ops is still safe to use.
func Select(id chipid.Identity, env Env) (*Ops, error) {
	r, ok := matchRule(id)
	if !ok {
		ops := newUnboundOps(env)
		ops.alias = id.ShortManufacturer
		return ops, errors.Wrapf(ErrUnknownVendor, "%q", id.Manufacturer)
	}
	alias := r.alias
	if alias == "" {
		alias = r.backend.Short
	}
	return r.backend.bind(env, alias), nil
}

// Setup selects and binds the backend for id, logging the outcome. It is meant to be called once
// at startup; the returned Ops is then handed to everything that needs hardware access.
func Setup(logger logging.Logger, id chipid.Identity, env Env) (*Ops, error) {
	if env.Logger == nil {
		env.Logger = logger
	}
	ops, err := Select(id, env)
	if err != nil {
		logger.Warnw("no HAL backend for this chip; hardware operations are unsupported",
			"manufacturer", id.Manufacturer, "chip", id.ChipName)
		return ops, err
	}
	caps := make([]string, 0, len(AllCapabilities))
	for _, c := range ops.Capabilities() {
		caps = append(caps, c.String())
	}
	logger.Debugw("HAL backend selected",
		"backend", ops.Vendor(), "alias", ops.ShortManufacturer(), "chip", id.ChipName,
		"capabilities", caps)
	return ops, nil
}
