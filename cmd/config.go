package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/xyproto/env/v2"

	"nanoc/report"
)

// Enumeration of emit modes.
const (
	EmitLLVM = "llvm"
	EmitCPS  = "cps"
	EmitDot  = "dot"
)

// BuildProfile is the compiler's configuration: defaults, overlaid with an
// optional `nano.toml` next to the source file, overlaid with NANO_*
// environment variables, overlaid with command-line options.
type BuildProfile struct {
	// OutPath is where emitted output is written.  Empty means standard out.
	OutPath string

	// EmitMode selects what the compiler emits after checking.
	EmitMode string

	// LogLevel is one of "silent", "error", "warn", "verbose".
	LogLevel string
}

// tomlProfile mirrors BuildProfile in the on-disk module file.
type tomlProfile struct {
	OutPath  string `toml:"out-path"`
	EmitMode string `toml:"emit-mode"`
	LogLevel string `toml:"log-level"`
}

// tomlBuildFile is the top-level structure of `nano.toml`.
type tomlBuildFile struct {
	Build *tomlProfile `toml:"build"`
}

// logLevels maps log level names onto report levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

// LoadProfile builds the profile for compiling the given source file.
func LoadProfile(srcPath string) (*BuildProfile, error) {
	profile := &BuildProfile{
		EmitMode: EmitLLVM,
		LogLevel: "warn",
	}

	// nano.toml is optional: a missing file just means defaults.
	buildFilePath := filepath.Join(filepath.Dir(srcPath), "nano.toml")
	if _, err := os.Stat(buildFilePath); err == nil {
		if err := profile.loadBuildFile(buildFilePath); err != nil {
			return nil, err
		}
	}

	profile.OutPath = env.Str("NANO_OUT", profile.OutPath)
	profile.EmitMode = env.Str("NANO_EMIT", profile.EmitMode)
	profile.LogLevel = env.Str("NANO_LOGLEVEL", profile.LogLevel)

	return profile, nil
}

// loadBuildFile overlays the profile with the settings of a `nano.toml`.
func (bp *BuildProfile) loadBuildFile(path string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return err
	}

	buildFile := &tomlBuildFile{}
	if err := tree.Unmarshal(buildFile); err != nil {
		return err
	}

	if buildFile.Build == nil {
		return nil
	}

	if buildFile.Build.OutPath != "" {
		bp.OutPath = buildFile.Build.OutPath
	}

	if buildFile.Build.EmitMode != "" {
		bp.EmitMode = buildFile.Build.EmitMode
	}

	if buildFile.Build.LogLevel != "" {
		bp.LogLevel = buildFile.Build.LogLevel
	}

	return nil
}
