package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"expensetally/schema"
)

type CheckCmd struct {
	Config string `help:"Schema document (JSON or YAML) to validate." arg:"" type:"existingfile"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	doc, err := schema.Load(cmd.Config)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return fmt.Errorf("schema validation failed")
	}

	compiled, err := schema.Compile(doc)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return fmt.Errorf("schema validation failed")
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Schema %s compiles cleanly", styles.Path(cmd.Config)))
	printInfof(ctx.Stdout, "composite pattern: %s", styles.Dim(compiled.Pattern.String()))
	printInfof(ctx.Stdout, "%d date format(s), %d payment lookup key(s), %d categories",
		len(compiled.DatePatterns), compiled.Registry.Len(), len(compiled.Categories))

	return nil
}
