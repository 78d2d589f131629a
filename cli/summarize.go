package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"expensetally/output"
	"expensetally/parser"
	"expensetally/schema"
	"expensetally/summary"
	"expensetally/telemetry"
)

type SummarizeCmd struct {
	Config string `help:"Schema document (JSON or YAML)." arg:"" type:"existingfile"`
	File   string `help:"Ledger file to summarize." arg:"" type:"existingfile"`

	JSON bool   `help:"Render the report as JSON instead of tables."`
	XLSX string `help:"Also export the report to an Excel workbook at this path." placeholder:"FILE"`
}

func (cmd *SummarizeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		root := collector.Start(fmt.Sprintf("summarize %s", filepath.Base(cmd.File)))
		defer func() {
			root.End()
			fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, styles)
		}()
	}

	totals, err := runSummarize(runCtx, globals, cmd.Config, cmd.File)
	if err != nil {
		return err
	}

	if cmd.JSON {
		if err := output.WriteJSON(ctx.Stdout, totals); err != nil {
			return err
		}
	} else {
		renderer := output.NewTableRenderer(styles, output.TerminalWidth(ctx.Stdout))
		renderer.Render(ctx.Stdout, totals)
	}

	if cmd.XLSX != "" {
		if err := output.WriteXLSX(cmd.XLSX, totals); err != nil {
			return err
		}
		printSuccess(ctx.Stdout, fmt.Sprintf("Exported report to %s", styles.Path(cmd.XLSX)))
	}

	return nil
}

// runSummarize is the shared load → parse → aggregate pipeline behind the
// summarize and watch commands.
func runSummarize(ctx context.Context, globals *Globals, configPath, ledgerPath string) (*summary.Totals, error) {
	collector := telemetry.FromContext(ctx)
	logger := globals.Logger()

	timer := collector.Start("load schema")
	doc, err := schema.Load(configPath)
	if err != nil {
		timer.End()
		return nil, err
	}
	compiled, err := schema.Compile(doc)
	timer.End()
	if err != nil {
		return nil, err
	}

	timer = collector.Start("parse")
	entries, err := parser.New(compiled, logger).ParseFile(ledgerPath)
	timer.End()
	if err != nil {
		return nil, err
	}

	timer = collector.Start("aggregate")
	totals := summary.Aggregate(entries)
	timer.End()

	return totals, nil
}
