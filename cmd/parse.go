package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/acrmp/codeprompt/agent"
	"github.com/acrmp/codeprompt/parser"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Extract the files from a saved response",
		ArgsUsage: "[response file, or - for stdin]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xml-tag", Usage: "File contents are wrapped in this XML element"},
			&cli.StringFlag{Name: "output-dir", Usage: "Write the files below this directory"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Bool("verbose"))

			var in io.Reader = os.Stdin
			if name := cmd.Args().First(); name != "" && name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("reading response: %w", err)
				}
				defer f.Close()
				in = f
			}

			var opts []parser.Option
			if tag := cmd.String("xml-tag"); tag != "" {
				opts = append(opts, parser.WithXMLTag(tag))
			}
			c := &parser.Collector{}
			p := parser.New(func(e parser.Event) {
				logger.Debug("parsed", "event", e.Kind, "path", e.Path)
				c.Handle(e)
			}, opts...)
			if _, err := io.Copy(p, in); err != nil {
				return fmt.Errorf("reading response: %w", err)
			}
			p.Finish()

			dir := cmd.String("output-dir")
			if dir == "" {
				for _, f := range c.Files() {
					fmt.Fprintln(os.Stdout, f.Path)
				}
				return nil
			}

			fw := agent.NewSimpleFileWriter(logger, dir)
			unlock, err := fw.Lock(ctx)
			if err != nil {
				return err
			}
			defer unlock()
			for _, f := range c.Files() {
				if err := fw.WriteFile(f.Path, f.Contents); err != nil {
					return fmt.Errorf("writing %q: %w", f.Path, err)
				}
				fmt.Fprintln(os.Stdout, f.Path)
			}
			return nil
		},
	}
}
