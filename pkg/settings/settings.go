// Package settings provides build metadata, per-run options, and context
// helpers used by the tagline CLI.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "tagline"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSource records where the labels of a run came from.
type InputSource string

const (
	InputArgs  InputSource = "args"
	InputFile  InputSource = "file"
	InputStdin InputSource = "stdin"
)

// Run holds options for a single execution of the application.
type Run struct {
	MinLogLevel int8
	Source      InputSource
	Path        string
	Interactive bool
	NoColor     bool
	IsQuiet     bool
	ExitOnError bool
}

// NewCliParams returns the defaults for a CLI invocation.
func NewCliParams() *Run {
	return &Run{
		Source:      InputArgs,
		ExitOnError: true,
	}
}

// DebugLevel reports whether V(1) logging is enabled.
func (r *Run) DebugLevel() bool {
	return r != nil && r.MinLogLevel < 0
}
