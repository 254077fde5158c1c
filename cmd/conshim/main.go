package main

import (
	"github.com/alecthomas/kong"
	"github.com/zaolin/conshim/internal/buildtags"
)

func main() {
	desc := "Format-safe console output and console log tooling"
	if buildtags.DebugEnabled {
		desc += " (debug build)"
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("conshim"),
		kong.Description(desc),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
