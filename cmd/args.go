package cmd

import (
	"fmt"
	"os"
	"strings"
)

const usage = `Usage: nanoc [flags|options] <path to source file>

Flags:
------
-h, --help      Displays usage information (ie. this text).

Options:
--------
-o,  --outpath    Sets the path for compilation output.  Defaults to standard
                  out if unspecified.
-ll, --loglevel   Sets the compiler's log level.  Valid values are:
                    - "verbose" for outputting all messages
                    - "warn" for outputting errors and warnings (default)
                    - "error" for outputting errors only
                    - "silent" for no output
-m,  --emitmode   Sets the compiler's emit mode.  Valid values are:
                    - "llvm" for producing LLVM IR (default)
                    - "cps" for producing the continuation-passing IR
                    - "dot" for producing a Graphviz rendering of the AST
`

// printUsage prints the usage message and exits the compiler with the given
// exit code.
func printUsage(exitCode int) {
	fmt.Print(usage, "\n")
	os.Exit(exitCode)
}

// argumentError displays an argument error and exits the program.
func argumentError(message string, args ...interface{}) {
	fmt.Print("argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// -----------------------------------------------------------------------------

// argParser is a command-line argument parser.
type argParser struct {
	// The arguments being parsed.
	args []string

	// The argument parser's position within those arguments.
	ndx int
}

// Set containing all the argument names that correspond to options.
var options = map[string]struct{}{
	"o":          {},
	"ll":         {},
	"m":          {},
	"-outpath":   {},
	"-loglevel":  {},
	"-emitmode":  {},
}

// nextArg parses the next command-line argument if one exists.  The first
// value is the name of the argument; it is empty for the positional argument.
// The second value is the value of the argument; it is empty for flags.  The
// final value indicates whether there was an argument to parse.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if !strings.HasPrefix(arg, "-") {
		return "", arg, true
	}

	name := arg[1:]
	if _, ok := options[name]; !ok {
		return name, "", true
	}

	if ap.ndx >= len(ap.args) {
		argumentError("option `%s` requires a value", arg)
	}

	value := ap.args[ap.ndx]
	ap.ndx++

	return name, value, true
}

// parseArgs parses the command line into the source path and the profile
// overrides it encodes.
func parseArgs(args []string) (string, map[string]string) {
	ap := &argParser{args: args}
	overrides := make(map[string]string)
	srcPath := ""

	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		switch name {
		case "":
			if srcPath != "" {
				argumentError("multiple source files given")
			}

			srcPath = value
		case "h", "-help":
			printUsage(0)
		case "o", "-outpath":
			overrides["outpath"] = value
		case "ll", "-loglevel":
			if _, ok := logLevels[value]; !ok {
				argumentError("unknown log level `%s`", value)
			}

			overrides["loglevel"] = value
		case "m", "-emitmode":
			switch value {
			case EmitLLVM, EmitCPS, EmitDot:
			default:
				argumentError("unknown emit mode `%s`", value)
			}

			overrides["emitmode"] = value
		default:
			argumentError("unknown argument `-%s`", name)
		}
	}

	if srcPath == "" {
		argumentError("no source file given")
	}

	return srcPath, overrides
}
