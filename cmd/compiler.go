package cmd

import (
	"fmt"
	"os"

	"nanoc/anf"
	"nanoc/ast"
	"nanoc/codegen"
	"nanoc/cps"
	"nanoc/desugar"
	"nanoc/report"
	"nanoc/resolve"
	"nanoc/syntax"
	"nanoc/visualize"
	"nanoc/walk"
)

// Compiler represents the state of one compiler invocation.
type Compiler struct {
	// srcPath is the path of the source file being compiled.
	srcPath string

	// profile is the current build profile of the compiler.
	profile *BuildProfile
}

// NewCompiler creates a new compiler for the given source file.
func NewCompiler(srcPath string, profile *BuildProfile) *Compiler {
	return &Compiler{srcPath: srcPath, profile: profile}
}

// Compile runs the full pipeline and emits output per the profile.  It
// returns false if compilation failed; diagnostics have been displayed.
func (c *Compiler) Compile() bool {
	prog, err := c.analyze()
	if err != nil {
		c.displayError(err)
		return false
	}

	if err := c.emit(prog); err != nil {
		c.displayError(err)
		return false
	}

	return true
}

// analyze runs the front and middle of the pipeline: parse, desugar,
// normalize, resolve, and check.  Every phase fails fast: the first compile
// error stops the pipeline.
func (c *Compiler) analyze() (*ast.Program, error) {
	file, err := os.Open(c.srcPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	report.DisplayPhase("parse")
	prog, err := syntax.Parse(c.srcPath, file)
	if err != nil {
		return nil, err
	}

	report.DisplayPhase("desugar")
	if err := desugar.Run(prog); err != nil {
		return nil, err
	}

	// The CPS lowering requires atomic operands; the LLVM generator walks
	// expression trees directly, and skipping normalization keeps loop
	// conditions re-evaluated where they appear.
	if c.profile.EmitMode == EmitCPS {
		report.DisplayPhase("normalize")
		if err := (&anf.Pass{}).Transform(prog); err != nil {
			return nil, err
		}
	}

	report.DisplayPhase("resolve")
	if err := resolve.Resolve(prog); err != nil {
		return nil, err
	}

	report.DisplayPhase("check")
	if err := walk.Check(prog); err != nil {
		return nil, err
	}

	// Bool literals lower only once checking has succeeded, so that bool/int
	// mismatches still diagnose against the source-level types.
	return desugar.LowerBools(prog), nil
}

// emit produces the configured output from a fully analyzed program.
func (c *Compiler) emit(prog *ast.Program) error {
	switch c.profile.EmitMode {
	case EmitCPS:
		report.DisplayPhase("lower (cps)")
		mod, err := cps.Lower(prog)
		if err != nil {
			return err
		}

		return c.writeOutput(cps.Print(mod))
	case EmitDot:
		return c.writeOutput(visualize.Draw(prog))
	default:
		report.DisplayPhase("generate (llvm)")
		mod, err := codegen.Generate(prog)
		if err != nil {
			return err
		}

		return c.writeOutput(mod.String())
	}
}

// writeOutput writes emitted text to the configured output path, or standard
// out when none is set.
func (c *Compiler) writeOutput(text string) error {
	if c.profile.OutPath == "" {
		fmt.Print(text)
		return nil
	}

	return os.WriteFile(c.profile.OutPath, []byte(text), 0o644)
}

// displayError routes an error to the right display function.
func (c *Compiler) displayError(err error) {
	if cerr, ok := err.(*report.CompileError); ok {
		report.DisplayCompileError(c.srcPath, cerr)
		return
	}

	report.DisplayStdError(err)
}
