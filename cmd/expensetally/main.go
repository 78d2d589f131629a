package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"expensetally/cli"
)

var root struct {
	Version kong.VersionFlag `help:"Show version information."`

	cli.Commands
}

func main() {
	ctx := kong.Parse(&root,
		kong.Name("expensetally"),
		kong.Description("Summarize free-form plain-text expense ledgers, driven by a declarative parser schema."),
		kong.UsageOnError(),
		kong.Vars{"version": buildVersion()},
		kong.Bind(&root.Globals),
	)

	err := ctx.Run(&root.Globals)
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	version := cli.Version
	if version == "" {
		version = "dev"
	}
	if cli.CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, cli.CommitSHA)
}
