package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// Enumeration of log levels.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// logLevel is the log level shared by all display functions.
var logLevel = LogLevelVerbose

// SetLogLevel sets the global log level.
func SetLogLevel(ll int) {
	logLevel = ll
}

// -----------------------------------------------------------------------------

// DisplayCompileError displays a compile error along with the path of the
// source file it occurred in.  The diagnostic line itself goes to standard
// error in the form `Error at line L, column C: <message>` so that tooling
// can consume it regardless of the styled banner.
func DisplayCompileError(path string, ce *CompileError) {
	if logLevel < LogLevelError {
		return
	}

	ErrorStyleBG.Print(errorTag(ce.Kind))
	ErrorColorFG.Println(" " + path)
	fmt.Fprintf(os.Stderr, "%s\n", ce.Error())
}

// DisplayStdError displays a standard Go error (eg. a failure to open the
// input file).
func DisplayStdError(err error) {
	if logLevel < LogLevelError {
		return
	}

	ErrorStyleBG.Print("Error")
	ErrorColorFG.Println(" " + err.Error())
}

// DisplayWarning displays a warning message.
func DisplayWarning(msg string) {
	if logLevel < LogLevelWarn {
		return
	}

	WarnStyleBG.Print("Warning")
	WarnColorFG.Println(" " + msg)
}

// DisplayInfo displays an informational message.  Informational messages only
// appear at the verbose log level.
func DisplayInfo(tag, msg string) {
	if logLevel < LogLevelVerbose {
		return
	}

	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// DisplayPhase reports the start of a compilation phase at the verbose log
// level.
func DisplayPhase(name string) {
	DisplayInfo("Phase", name)
}

// -----------------------------------------------------------------------------

var errorTags = map[ErrorKind]string{
	ErrLex:   "Lex Error",
	ErrParse: "Parse Error",

	ErrRedeclaration:       "Name Error",
	ErrUndeclaredName:      "Name Error",
	ErrNotCallable:         "Name Error",
	ErrInvalidAssignTarget: "Name Error",

	ErrTypeMismatch:       "Type Error",
	ErrNonNumeric:         "Type Error",
	ErrNonBoolean:         "Type Error",
	ErrBadArgumentCount:   "Type Error",
	ErrNoMain:             "Type Error",
	ErrReturnTypeMismatch: "Type Error",
	ErrMissingReturn:      "Type Error",

	ErrInternal: "Internal Error",
}

func errorTag(kind ErrorKind) string {
	if tag, ok := errorTags[kind]; ok {
		return tag
	}

	return "Error"
}
