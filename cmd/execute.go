package cmd

import (
	"os"

	"nanoc/report"
)

// Execute runs the main `nanoc` application.
func Execute() {
	srcPath, overrides := parseArgs(os.Args[1:])

	profile, err := LoadProfile(srcPath)
	if err != nil {
		report.DisplayStdError(err)
		os.Exit(1)
	}

	if v, ok := overrides["outpath"]; ok {
		profile.OutPath = v
	}
	if v, ok := overrides["loglevel"]; ok {
		profile.LogLevel = v
	}
	if v, ok := overrides["emitmode"]; ok {
		profile.EmitMode = v
	}

	level, ok := logLevels[profile.LogLevel]
	if !ok {
		level = report.LogLevelWarn
	}
	report.SetLogLevel(level)

	if !NewCompiler(srcPath, profile).Compile() {
		os.Exit(1)
	}
}
