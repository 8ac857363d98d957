// Package version reports the build's version, commit and date.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var versionFile string

// Set via -ldflags "-X github.com/leefowlercu/unibundle/internal/version.gitCommit=VALUE".
var (
	gitCommit string
	buildDate string
)

const unknown = "unknown"

// Info represents version and build information.
type Info struct {
	Version   string
	GitCommit string // short hash, "-dirty" when built from a modified tree
	BuildDate string
	GoVersion string
}

// String formats Info for human-readable display.
func (i Info) String() string {
	return fmt.Sprintf("Version:    %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

// Short returns "unibundle <version> (<commit>)".
func (i Info) Short() string {
	if i.GitCommit == "" || i.GitCommit == unknown {
		return "unibundle " + i.Version
	}
	return fmt.Sprintf("unibundle %s (%s)", i.Version, i.GitCommit)
}

// Get returns the build's Info.
func Get() Info {
	return Info{
		Version:   strings.TrimSpace(versionFile),
		GitCommit: commit(),
		BuildDate: orUnknown(buildDate),
		GoVersion: runtime.Version(),
	}
}

// commit prefers the linker-injected hash, then the VCS stamp recorded by go build.
func commit() string {
	if gitCommit != "" {
		return gitCommit
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknown
	}
	return vcsCommit(info.Settings)
}

func vcsCommit(settings []debug.BuildSetting) string {
	var revision string
	var dirty bool
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return unknown
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	return revision
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
