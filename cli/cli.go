// Package cli implements the expensetally command tree and its terminal
// conventions.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"expensetally/output"
)

var styles = output.NewStyles()

func printSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", styles.Success(output.SuccessSymbol), message)
}

func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", styles.Error(output.ErrorSymbol), styles.Error(message))
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", styles.Info(output.InfoSymbol), fmt.Sprintf(format, args...))
}

// promptYesNo asks a yes/no question. Defaults to no when stdin is not a
// terminal, so scripted runs never hang on a prompt.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}

func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
