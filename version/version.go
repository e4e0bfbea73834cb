package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// Info represents version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get returns the version information of the running binary.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = setting.Value
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns the detailed version line printed by the CLI.
func (i Info) String() string {
	return fmt.Sprintf("firekit %s (%s)", i.Short(), i.GoVersion)
}

// UserAgent returns the User-Agent header value sent by the transport.
func UserAgent() string {
	return "firekit/" + Version
}
