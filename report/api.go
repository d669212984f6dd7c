package report

import (
	"fmt"
	"os"

	"snek/common"
)

var versionString = common.SnekVersion

// -----------------------------------------------------------------------------
// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions simply do nothing below their log level.

// ReportCompileError reports an error returned by a compilation stage.  If err
// is a compile error, its position is displayed against the source text.  The
// reprPath is the path shown to the user.
func ReportCompileError(reprPath, src string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)

		if cerr, ok := AsCompileError(err); ok {
			displayCompileMessage(reprPath, src, cerr)
		} else {
			displayStdError(reprPath, err)
		}
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayEndPhase(false)
		displayStdError(reprPath, err)
	}
}

// ReportICE reports an internal compiler error.  These are always displayed
// regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayEndPhase(false)
	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error and exits: these are expected errors that
// result from invalid usage or configuration.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		displayEndPhase(false)
		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}

// DisplayInfoMessage displays a tagged informational message.
func DisplayInfoMessage(tag, msg string) {
	displayInfo(tag, msg)
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that only run at the
// verbose log level.

// ReportCompileHeader reports the pre-compilation header.
func ReportCompileHeader(target string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(target)
	}
}

// ReportBeginPhase reports the beginning of a compilation phase.
func ReportBeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// ReportEndPhase reports the end of the current compilation phase.
func ReportEndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished(outputPath string) {
	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(!AnyErrors(), outputPath)
	}
}
