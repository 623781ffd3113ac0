// Package version reports how the autogen binary was built.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/teranos/autogen/version.Version=...".
var (
	CommitHash = "dev"
	BuildTime  = "unknown"
	Version    = "dev"
)

// Info describes the running binary. Frontends is filled in by callers
// that know which parser backends were compiled in.
type Info struct {
	Version    string   `json:"version"`
	CommitHash string   `json:"commit_hash"`
	BuildTime  string   `json:"build_time"`
	GoVersion  string   `json:"go_version"`
	Platform   string   `json:"platform"`
	Frontends  []string `json:"frontends,omitempty"`
}

func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the banner printed by "autogen version".
func (i Info) String() string {
	name := "dev"
	if i.IsRelease() {
		name = i.Version
	}
	return fmt.Sprintf("autogen %s (commit %s, built %s)", name, i.CommitHash, i.BuildTime)
}

// Short is the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) < 7 {
		return i.CommitHash
	}
	return i.CommitHash[:7]
}

// IsRelease reports whether Version came from a tag. The requires check in
// autogen.toml only applies to release builds.
func (i Info) IsRelease() bool {
	return i.Version != "" && i.Version != "dev"
}
