package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	applog "expensetally/log"
	"expensetally/output"
)

type WatchCmd struct {
	Config string `help:"Schema document (JSON or YAML)." arg:"" type:"existingfile"`
	File   string `help:"Ledger file to watch." arg:"" type:"existingfile"`

	JSON bool `help:"Render each report as JSON instead of tables."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := globals.Logger().WithComponent(applog.ComponentWatch)

	ledgerFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	cmd.render(ctx, globals)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself so atomic saves
	// (write to temp, rename over) keep being observed.
	if err := watcher.Add(filepath.Dir(ledgerFile)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", ledgerFile, err)
	}

	printInfof(ctx.Stdout, "watching %s, press Ctrl-C to stop", styles.Path(ledgerFile))

	// Editors often save in several steps; debounce to re-render once.
	const debounceDelay = 100 * time.Millisecond
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-runCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != ledgerFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				cmd.render(ctx, globals)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", applog.FieldError, err)
		}
	}
}

// render runs one summarize pass; failures are reported but do not stop
// the watch.
func (cmd *WatchCmd) render(ctx *kong.Context, globals *Globals) {
	totals, err := runSummarize(context.Background(), globals, cmd.Config, cmd.File)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return
	}

	fmt.Fprintf(ctx.Stdout, "\n%s\n\n", styles.Dim(time.Now().Format("15:04:05")))

	if cmd.JSON {
		if err := output.WriteJSON(ctx.Stdout, totals); err != nil {
			printError(ctx.Stderr, err.Error())
		}
		return
	}

	renderer := output.NewTableRenderer(styles, output.TerminalWidth(ctx.Stdout))
	renderer.Render(ctx.Stdout, totals)
}
