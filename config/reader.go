package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gopkg.in/yaml.v3"
)

// FromReader reads and validates a config. Unknown keys are rejected.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	conf := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "cannot parse config %s", originalPath)
	}
	if err := conf.Validate(originalPath); err != nil {
		return nil, err
	}
	return conf, nil
}

// Read reads the config at path. A missing file at DefaultPath yields the default config; any
// other missing file is an error.
func Read(path string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return FromReader(path, bytes.NewReader(nil))
		}
		return nil, err
	}
	defer goutils.UncheckedErrorFunc(f.Close)
	return FromReader(path, f)
}
