/*
Codeprompt asks a LLM for source files and writes them into a project.

The prompt is read from a file which may start with a front matter block of
settings in JSON, TOML or YAML. Project files selected with include patterns
are sent along as context. The response is parsed as it streams: every
"File path:" marker followed by a fenced block becomes a file.

WARNING: It writes whatever the LLM returns and can run a follow-up command
over the result. Any usage is at your own risk.
*/
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "codeprompt",
		Usage: "Generate project files with a LLM",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log debug output, including the raw response"},
		},
		Commands: []*cli.Command{
			generateCmd(),
			parseCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		newLogger(false).Error("codeprompt failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}
