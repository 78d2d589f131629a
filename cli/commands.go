package cli

import (
	"log/slog"

	applog "expensetally/log"
)

var (
	// Version and CommitSHA are set via ldflags when building.
	Version   = ""
	CommitSHA = ""
)

// Globals defines flags available to every command.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
	Verbose   bool `help:"Log informational diagnostics." short:"v"`
	Debug     bool `help:"Log debug-level diagnostics." short:"d"`
}

// Logger builds the diagnostics logger the global flags ask for.
func (g *Globals) Logger() *applog.Logger {
	level := slog.LevelWarn
	if g.Verbose {
		level = slog.LevelInfo
	}
	if g.Debug {
		level = slog.LevelDebug
	}
	return applog.New(applog.Config{Level: level})
}

// Commands is the root command tree.
type Commands struct {
	Globals

	Summarize SummarizeCmd `cmd:"" help:"Parse a ledger file and print aggregate totals."`
	Check     CheckCmd     `cmd:"" help:"Validate and compile a schema document without parsing anything."`
	Init      InitCmd      `cmd:"" help:"Write a documented sample schema document."`
	Watch     WatchCmd     `cmd:"" help:"Re-summarize a ledger file whenever it changes."`
}
