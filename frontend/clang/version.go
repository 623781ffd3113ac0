package clang

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/teranos/autogen/errors"
)

// SupportedMajor is the libclang major version the bindings target.
const SupportedMajor = 13

var versionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// ParseVersion extracts the version from a clang version banner such as
// "Ubuntu clang version 13.0.1-2ubuntu2".
func ParseVersion(banner string) (*semver.Version, error) {
	m := versionPattern.FindString(banner)
	if m == "" {
		return nil, errors.NewConfigurationError("cannot find a version in %q", banner)
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, errors.WrapConfiguration(err, "invalid libclang version")
	}
	return v, nil
}

// CheckVersion rejects libclang builds the bindings were not generated for.
func CheckVersion(banner string) (*semver.Version, error) {
	v, err := ParseVersion(banner)
	if err != nil {
		return nil, err
	}
	if v.Major() != SupportedMajor {
		return v, errors.WithHintf(
			errors.NewConfigurationError("libclang %s is not supported", v),
			"install libclang %d or use --frontend treesitter", SupportedMajor)
	}
	return v, nil
}
