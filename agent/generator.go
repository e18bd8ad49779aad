// Package agent asks a LLM for source files and writes the files it returns
// to an output directory.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"golang.org/x/sync/errgroup"

	"github.com/acrmp/codeprompt/parser"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . CommandExecutor
type CommandExecutor interface {
	Execute(ctx context.Context, command string, files []string) (string, error)
}

//counterfeiter:generate . FileWriter
type FileWriter interface {
	Lock(ctx context.Context) (func() error, error)
	WriteFile(path, content string) error
}

//counterfeiter:generate . Model
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

//counterfeiter:generate . Prompter
type Prompter interface {
	Confirm(question string) (bool, error)
}

// ErrNotConfirmed is returned by Run when the user declines to write files.
var ErrNotConfirmed = errors.New("writing files was not confirmed")

// A Request describes what to ask the model for.
type Request struct {
	System      string
	Prompt      string
	XMLTag      string
	Temperature float64
	MaxTokens   int
}

// Options control what Run does with the generated files.
type Options struct {
	DryRun      bool
	Confirm     bool
	Exec        string
	Concurrency int
}

// A Result holds the outcome of a run.
type Result struct {
	Files   []parser.FileBlock
	Prose   string
	Written []string
}

// A Generator streams a completion through the file block parser and writes
// the files it finds.
type Generator struct {
	logger          *slog.Logger
	model           Model
	commandExecutor CommandExecutor
	fileWriter      FileWriter
	prompter        Prompter
	echo            io.Writer
}

// NewGenerator creates a Generator.
func NewGenerator(logger *slog.Logger, m Model, ce CommandExecutor, fw FileWriter, p Prompter) *Generator {
	return &Generator{logger: logger, model: m, commandExecutor: ce, fileWriter: fw, prompter: p}
}

// EchoTo copies the raw response to w as it streams.
func (g *Generator) EchoTo(w io.Writer) {
	g.echo = w
}

// Run generates files for req and writes them according to opts.
// A path returned more than once is written once, with the last contents.
func (g *Generator) Run(ctx context.Context, req Request, opts Options) (*Result, error) {
	files, prose, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	res := &Result{Files: g.dedupe(files), Prose: prose}

	if len(res.Files) == 0 {
		g.logger.Warn("no files in response")
		return res, nil
	}
	if opts.DryRun {
		for _, f := range res.Files {
			g.logger.Info("would write file", "path", f.Path)
		}
		return res, nil
	}

	if opts.Confirm {
		ok, err := g.prompter.Confirm(confirmation(res.Files))
		if err != nil {
			return res, err
		}
		if !ok {
			return res, ErrNotConfirmed
		}
	}

	res.Written, err = g.write(ctx, res.Files, opts.Concurrency)
	if err != nil {
		return res, err
	}

	if opts.Exec != "" {
		out, err := g.commandExecutor.Execute(ctx, opts.Exec, res.Written)
		g.logger.Info("command finished", "command", opts.Exec, "output", out)
		if err != nil {
			return res, fmt.Errorf("running %q: %w", opts.Exec, err)
		}
	}
	return res, nil
}

// Generate sends req to the model and returns the files in the response in
// the order they completed, along with the prose around them.
func (g *Generator) Generate(ctx context.Context, req Request) ([]parser.FileBlock, string, error) {
	var popts []parser.Option
	if req.XMLTag != "" {
		popts = append(popts, parser.WithXMLTag(req.XMLTag))
	}
	c := &parser.Collector{}
	p := parser.New(func(e parser.Event) {
		g.handle(e)
		c.Handle(e)
	}, popts...)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(req.System),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(req.Prompt),
			},
		},
	}

	streamed := false
	callOpts := []llms.CallOption{
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			streamed = true
			return p.ProcessChunk(string(chunk))
		}),
	}
	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	r, err := g.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, "", fmt.Errorf("generating content: %w", err)
	}
	// some providers ignore the streaming func
	if !streamed && r != nil && len(r.Choices) > 0 {
		_ = p.ProcessChunk(r.Choices[0].Content)
	}
	p.Finish()

	return c.Files(), c.Prose(), nil
}

func (g *Generator) handle(e parser.Event) {
	switch e.Kind {
	case parser.EventText:
		if g.echo != nil {
			io.WriteString(g.echo, e.Content)
		}
	case parser.EventTextBlock:
		g.logger.Info("AI says", "content", strings.TrimSpace(e.Content))
	case parser.EventStartFileBlock:
		g.logger.Info("receiving file", "path", e.Path)
	case parser.EventEndFileBlock:
		g.logger.Info("received file", "path", e.File.Path, "bytes", len(e.File.Contents))
	}
}

func (g *Generator) dedupe(files []parser.FileBlock) []parser.FileBlock {
	index := make(map[string]int, len(files))
	var out []parser.FileBlock
	for _, f := range files {
		f.Path = path.Clean(f.Path)
		if i, ok := index[f.Path]; ok {
			g.logger.Warn("file returned more than once, keeping the last", "path", f.Path)
			out[i] = f
			continue
		}
		index[f.Path] = len(out)
		out = append(out, f)
	}
	return out
}

func (g *Generator) write(ctx context.Context, files []parser.FileBlock, concurrency int) ([]string, error) {
	unlock, err := g.fileWriter.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			g.logger.Warn("releasing lock", "err", err)
		}
	}()

	var eg errgroup.Group
	eg.SetLimit(max(concurrency, 1))
	written := make([]bool, len(files))
	for i, f := range files {
		eg.Go(func() error {
			if err := g.fileWriter.WriteFile(f.Path, f.Contents); err != nil {
				return fmt.Errorf("writing %q: %w", f.Path, err)
			}
			written[i] = true
			return nil
		})
	}
	err = eg.Wait()

	var paths []string
	for i, f := range files {
		if written[i] {
			paths = append(paths, f.Path)
		}
	}
	return paths, err
}

func confirmation(files []parser.FileBlock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The response contains %d file(s):\n", len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "  %s\n", f.Path)
	}
	b.WriteString("Write them?")
	return b.String()
}
