// Package cmd implements the `snek` command line utility.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"snek/ast"
	"snek/codegen"
	"snek/common"
	"snek/config"
	"snek/report"
)

// Execute is the main entry point for the `snek` CLI utility.  It returns the
// exit code of the utility.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("snek", "snek compiles typed Python programs to WebAssembly", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile a source file", true)
	buildCmd.AddPrimaryArg("src-path", "the path to the source file to compile", true)
	buildCmd.AddStringArg("output", "o", "the path to write the compiled output to", false)
	buildCmd.AddSelectorArg("target", "t", "the compilation target", false, []string{"wat", "llvm"})
	buildCmd.AddSelectorArg("arithmetic", "a", "the integer arithmetic mode", false, []string{"signed", "unsigned"})

	checkCmd := cli.AddSubcommand("check", "check a source file for errors", true)
	checkCmd.AddPrimaryArg("src-path", "the path to the source file to check", true)
	checkCmd.AddFlag("dump", "d", "print the typed program tree")

	runCmd := cli.AddSubcommand("run", "compile and run a source file", true)
	runCmd.AddPrimaryArg("src-path", "the path to the source file to run", true)
	runCmd.AddSelectorArg("arithmetic", "a", "the integer arithmetic mode", false, []string{"signed", "unsigned"})

	initCmd := cli.AddSubcommand("init", "create a default profile file", true)
	initCmd.AddPrimaryArg("dir", "the directory to create the profile file in", false)

	cli.AddSubcommand("version", "print the snek version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	// the log level given on the command line takes precedence over the one
	// set in the profile
	logLevel, hasLogLevel := report.LogLevelVerbose, false
	if logLevelArg, ok := result.Arguments["loglevel"]; ok {
		logLevel, hasLogLevel = report.ParseLogLevel(logLevelArg.(string))
	}
	report.InitReporter(logLevel)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult, hasLogLevel)
	case "check":
		return execCheckCommand(subResult, hasLogLevel)
	case "run":
		return execRunCommand(subResult, hasLogLevel)
	case "init":
		return execInitCommand(subResult)
	case "version":
		report.DisplayInfoMessage("Snek Version", common.SnekVersion)
	}

	return 0
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult, hasLogLevel bool) int {
	c := newCompiler(result, hasLogLevel)

	if outputArg, ok := result.Arguments["output"]; ok {
		c.profile.OutputPath = outputArg.(string)
	}

	if !c.Build() {
		report.ReportCompilationFinished("")
		return 1
	}

	report.ReportCompilationFinished(c.OutputPath())
	return 0
}

// execCheckCommand executes the check subcommand and handles all errors.
func execCheckCommand(result *olive.ArgParseResult, hasLogLevel bool) int {
	c := newCompiler(result, hasLogLevel)

	prog, ok := c.Analyze()
	report.ReportCompilationFinished("")
	if !ok {
		return 1
	}

	if result.HasFlag("dump") {
		os.Stdout.WriteString(ast.Dump(prog))
	}

	return 0
}

// execRunCommand executes the run subcommand and handles all errors.
func execRunCommand(result *olive.ArgParseResult, hasLogLevel bool) int {
	c := newCompiler(result, hasLogLevel)

	// interrupting the program cancels its execution
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !c.Run(ctx) {
		return 1
	}

	return 0
}

// execInitCommand executes the init subcommand and handles all errors.
func execInitCommand(result *olive.ArgParseResult) int {
	dir, ok := result.PrimaryArg()
	if !ok {
		dir = "."
	}

	if err := config.Init(dir); err != nil {
		report.ReportStdError(filepath.Join(dir, common.ProfileFileName), err)
		return 1
	}

	report.DisplayInfoMessage("Profile Created", filepath.Join(dir, common.ProfileFileName))
	return 0
}

// -----------------------------------------------------------------------------

// newCompiler creates the compiler for the source file named by the primary
// argument of result and applies the command line overrides to its profile.
func newCompiler(result *olive.ArgParseResult, hasLogLevel bool) *Compiler {
	srcPath, _ := result.PrimaryArg()
	c := NewCompiler(srcPath)

	if !hasLogLevel {
		report.InitReporter(c.profile.LogLevel)
	}

	if targetArg, ok := result.Arguments["target"]; ok {
		c.profile.Target, _ = common.ParseTarget(targetArg.(string))
	}

	if arithArg, ok := result.Arguments["arithmetic"]; ok {
		c.profile.Arithmetic, _ = codegen.ParseArithmetic(arithArg.(string))
	}

	return c
}
