// Package version reports which build of gen-training-data produced a
// dataset. Release builds set the fields with -ldflags -X; other builds fall
// back to the VCS stamp the Go toolchain embeds in the binary.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/lucy-seohyun/D2STGNN/version.<name>=<value>".
var (
	release   = ""
	commit    = ""
	buildDate = ""
)

// Info identifies a build.
type Info struct {
	Release   string `json:"release"`
	Commit    string `json:"commit"`
	Modified  bool   `json:"modified,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	Module    string `json:"module,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	info := Info{
		Release:   release,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	if info.Release == "" {
		info.Release = "devel"
	}
	return info
}

// fromBuildInfo fills what ldflags left empty.
func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	info.Module = bi.Main.Path
	if info.Release == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Release = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// String returns the release, with the short commit when known.
func (i Info) String() string {
	if len(i.Commit) >= 7 {
		return fmt.Sprintf("%s (%s)", i.Release, i.Commit[:7])
	}
	return i.Release
}

// JSON returns the build information as a JSON document.
func (i Info) JSON() string {
	res, _ := json.Marshal(i)
	return string(res)
}
