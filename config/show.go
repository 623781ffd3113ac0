package config

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/teranos/autogen/errors"
)

// Show writes the effective configuration as TOML.
func Show(w io.Writer, c *Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return nil
}

