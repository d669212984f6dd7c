package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"snek/ast"
	"snek/common"
	"snek/compile"
	"snek/config"
	"snek/report"
)

// Compiler represents the state of a single compilation of a source file.
type Compiler struct {
	// srcAbsPath is the absolute path to the source file.
	srcAbsPath string

	// reprPath is the path displayed to the user in error messages.
	reprPath string

	// src is the text of the source file.
	src string

	// profile is the build profile the compilation runs with.  It is loaded
	// from the directory containing the source file.
	profile *config.Profile
}

// NewCompiler creates a new compiler for the source file at srcRelPath.
func NewCompiler(srcRelPath string) *Compiler {
	srcAbsPath, err := filepath.Abs(srcRelPath)
	if err != nil {
		report.ReportFatal("error calculating absolute path: %s", err.Error())
		return nil
	}

	if filepath.Ext(srcAbsPath) != common.SrcFileExtension {
		report.ReportFatal("source file must have the extension `%s`", common.SrcFileExtension)
		return nil
	}

	buff, err := os.ReadFile(srcAbsPath)
	if err != nil {
		report.ReportFatal("error reading source file: %s", err.Error())
		return nil
	}

	prof, err := config.Load(filepath.Dir(srcAbsPath))
	if err != nil {
		report.ReportFatal(err.Error())
		return nil
	}

	return &Compiler{
		srcAbsPath: srcAbsPath,
		reprPath:   srcRelPath,
		src:        string(buff),
		profile:    prof,
	}
}

// OutputPath returns the path the compiled output is written to.  Unless the
// profile names one, it is the source path with the extension of the target.
func (c *Compiler) OutputPath() string {
	if c.profile.OutputPath != "" {
		return c.profile.OutputPath
	}

	return strings.TrimSuffix(c.srcAbsPath, common.SrcFileExtension) + common.TargetExtension(c.profile.Target)
}

// Analyze runs the analysis phases of the compiler.  It returns the typed
// program if analysis succeeded.
func (c *Compiler) Analyze() (*ast.Program, bool) {
	report.ReportCompileHeader("check")

	prog, err := compile.Analyze(c.src, c.options())
	if err != nil {
		report.ReportCompileError(c.reprPath, c.src, err)
		return nil, false
	}

	return prog, true
}

// Build compiles the source file and writes the output to the output path.
func (c *Compiler) Build() bool {
	report.ReportCompileHeader(targetNames[c.profile.Target])

	output, err := compile.Compile(c.src, c.options())
	if err != nil {
		report.ReportCompileError(c.reprPath, c.src, err)
		return false
	}

	outputPath := c.OutputPath()
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		report.ReportStdError(outputPath, err)
		return false
	}

	if err := os.WriteFile(outputPath, []byte(output), 0o644); err != nil {
		report.ReportStdError(outputPath, err)
		return false
	}

	return true
}

// Run compiles the source file and executes it on the reference host.  The
// program writes its output to standard out.
func (c *Compiler) Run(ctx context.Context) bool {
	report.ReportCompileHeader(targetNames[common.TargetWAT])

	result, err := compile.Run(ctx, c.src, c.options(), os.Stdout)
	if err != nil {
		// traps are displayed as standard errors
		report.ReportCompileError(c.reprPath, c.src, err)
		return false
	}

	if result.HasValue && report.LogLevel() == report.LogLevelVerbose {
		report.DisplayInfoMessage("Result", fmt.Sprint(result.Value))
	}

	return true
}

// options returns the compilation options derived from the profile.
func (c *Compiler) options() compile.Options {
	return compile.Options{
		Target:     c.profile.Target,
		Arithmetic: c.profile.Arithmetic,
		Phases:     phaseReporter{},
	}
}

// -----------------------------------------------------------------------------

// phaseReporter displays compilation phases through the global reporter.
type phaseReporter struct{}

func (phaseReporter) BeginPhase(phase string) {
	report.ReportBeginPhase(phase)
}

func (phaseReporter) EndPhase(success bool) {
	report.ReportEndPhase(success)
}

// targetNames maps compilation targets to their display names.
var targetNames = map[int]string{
	common.TargetWAT:  "wat",
	common.TargetLLVM: "llvm",
}
