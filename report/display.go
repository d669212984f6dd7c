package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

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

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println("This error was not supposed to happen: this is a bug in snek.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
}

// displayInfo prints an informational message to the user.
func displayInfo(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// displayCompileMessage displays a compilation error.  The source text is
// passed in directly since the compiler already holds it in memory.
func displayCompileMessage(reprPath, src string, cerr *CompileError) {
	if cerr.Span == nil {
		fmt.Printf("%s: ", reprPath)
	} else {
		fmt.Printf("%s:%d:%d: ", reprPath, cerr.Span.StartLine+1, cerr.Span.StartCol+1)
	}

	ErrorStyleBG.Print(cerr.KindName() + " error")
	fmt.Println(" " + cerr.Message)

	if cerr.Span != nil && src != "" {
		fmt.Println()
		displaySourceText(src, cerr.Span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Printf("%s: ", reprPath)
	ErrorStyleBG.Print("error")
	fmt.Println(" " + err.Error())
}

// -----------------------------------------------------------------------------

// displaySourceText displays the lines of src covered by span with the
// selected text underlined by carets.
func displaySourceText(src string, span *TextSpan) {
	srcLines := strings.Split(src, "\n")
	if span.StartLine >= len(srcLines) {
		return
	}

	endLine := span.EndLine
	if endLine >= len(srcLines) {
		endLine = len(srcLines) - 1
	}

	var lines []string
	for ln := span.StartLine; ln <= endLine; ln++ {
		lines = append(lines, strings.ReplaceAll(strings.TrimRight(srcLines[ln], "\r"), "\t", "    "))
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt32
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(endLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and at the
		// trimmed indentation on every other line.
		start := minIndent
		if i == 0 {
			start = clamp(span.StartCol, minIndent, len(line))
		}

		// Underlining stops at the end column on the last line and at the end
		// of the line on every other line.
		end := len(line)
		if i == len(lines)-1 {
			end = clamp(span.EndCol, start, len(line))
		}

		fmt.Print(strings.Repeat(" ", start-minIndent))
		if end == start {
			end++
		}

		ErrorColorFG.Println(strings.Repeat("^", end-start))
	}

	fmt.Println()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before compilation.
func displayCompileHeader(target string) {
	fmt.Print("snek ")
	InfoColorFG.Print("v" + versionString)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
}

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, outputPath string) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
		if outputPath != "" {
			fmt.Print("Output written to ")
			InfoColorFG.Println(outputPath)
		} else {
			fmt.Println()
		}
	} else {
		ErrorColorFG.Println("Oh no! Compilation failed.")
	}
}
