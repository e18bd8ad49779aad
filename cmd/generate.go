package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
	cli "github.com/urfave/cli/v3"

	"github.com/acrmp/codeprompt/agent"
	"github.com/acrmp/codeprompt/config"
	"github.com/acrmp/codeprompt/gitrepo"
	"github.com/acrmp/codeprompt/prompt"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Send a prompt to the model and write the files it returns",
		ArgsUsage: "<prompt file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "project-dir", Value: ".", Usage: "Project holding .codeprompt.toml and the context files"},
			&cli.StringFlag{Name: "output-dir", Usage: "Directory to write files to (default: the project dir)"},
			&cli.StringFlag{Name: "provider", Usage: "anthropic or openai", Sources: cli.EnvVars("CODEPROMPT_PROVIDER")},
			&cli.StringFlag{Name: "model", Usage: "Model name", Sources: cli.EnvVars("CODEPROMPT_MODEL")},
			&cli.StringFlag{Name: "xml-tag", Usage: "Ask for file contents wrapped in this XML element"},
			&cli.StringFlag{Name: "exec", Usage: "Command to run in the output dir after writing"},
			&cli.IntFlag{Name: "concurrency", Usage: "Files written in parallel"},
			&cli.IntFlag{Name: "max-tokens", Usage: "Maximum tokens in the response"},
			&cli.FloatFlag{Name: "temperature", Usage: "Sampling temperature"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show the files without writing them"},
			&cli.BoolFlag{Name: "force", Usage: "Write even when the git working tree is dirty"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Write without asking"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd.Bool("verbose")).With("run", uuid.NewString())

			promptPath := cmd.Args().First()
			if promptPath == "" {
				return fmt.Errorf("prompt file argument is required")
			}
			projectDir := cmd.String("project-dir")

			cfg, err := config.Load(projectDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			src, err := os.ReadFile(promptPath)
			if err != nil {
				return fmt.Errorf("reading prompt: %w", err)
			}
			body, format, err := prompt.SplitFrontMatter(string(src), cfg)
			if err != nil {
				return fmt.Errorf("reading front matter: %w", err)
			}
			logger.Debug("read prompt", "path", promptPath, "front_matter", format)

			resolvePaths(cfg, projectDir)
			applyFlags(cfg, cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			files, err := prompt.Gather(logger, projectDir, prompt.GatherOptions{
				Include:     cfg.Include,
				Exclude:     cfg.Exclude,
				MaxFileSize: cfg.MaxFileSize,
			})
			if err != nil {
				return fmt.Errorf("gathering context: %w", err)
			}
			msgs, err := prompt.Build(cfg.SystemTemplate, prompt.Input{Prompt: body, Files: files, XMLTag: cfg.XMLTag})
			if err != nil {
				return err
			}

			dryRun := cmd.Bool("dry-run")
			if !dryRun && !cmd.Bool("force") {
				if err := checkWorktree(logger, projectDir); err != nil {
					return err
				}
			}

			m, err := newModel(cfg)
			if err != nil {
				return fmt.Errorf("initializing model: %w", err)
			}
			logger.Info("generating", "provider", cfg.Provider, "model", cfg.ModelName(), "context_files", len(files))

			g := agent.NewGenerator(
				logger,
				m,
				agent.NewBashExecutor(logger, cfg.OutputDir),
				agent.NewSimpleFileWriter(logger, cfg.OutputDir),
				agent.NewTerminalPrompter(os.Stdin, os.Stderr),
			)
			if cmd.Bool("verbose") {
				g.EchoTo(os.Stderr)
			}

			res, err := g.Run(ctx, agent.Request{
				System:      msgs.System,
				Prompt:      msgs.User,
				XMLTag:      cfg.XMLTag,
				Temperature: cfg.Temperature,
				MaxTokens:   cfg.MaxTokens,
			}, agent.Options{
				DryRun:      dryRun,
				Confirm:     !cmd.Bool("yes"),
				Exec:        cfg.Exec,
				Concurrency: cfg.Concurrency,
			})
			if errors.Is(err, agent.ErrNotConfirmed) {
				logger.Info("nothing written")
				return nil
			}
			if res != nil {
				for _, p := range res.Written {
					fmt.Fprintln(os.Stdout, p)
				}
			}
			return err
		},
	}
}

// resolvePaths makes paths read from the config file or front matter relative
// to the project dir.
func resolvePaths(cfg *config.Config, projectDir string) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = projectDir
	} else if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(projectDir, cfg.OutputDir)
	}
	if cfg.SystemTemplate != "" && !filepath.IsAbs(cfg.SystemTemplate) {
		cfg.SystemTemplate = filepath.Join(projectDir, cfg.SystemTemplate)
	}
}

func applyFlags(cfg *config.Config, cmd *cli.Command) {
	if cmd.IsSet("output-dir") {
		cfg.OutputDir = cmd.String("output-dir")
	}
	if cmd.IsSet("provider") {
		cfg.Provider = cmd.String("provider")
	}
	if cmd.IsSet("model") {
		cfg.Model = cmd.String("model")
	}
	if cmd.IsSet("xml-tag") {
		cfg.XMLTag = cmd.String("xml-tag")
	}
	if cmd.IsSet("exec") {
		cfg.Exec = cmd.String("exec")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = int(cmd.Int("concurrency"))
	}
	if cmd.IsSet("max-tokens") {
		cfg.MaxTokens = int(cmd.Int("max-tokens"))
	}
	if cmd.IsSet("temperature") {
		cfg.Temperature = cmd.Float("temperature")
	}
}

func checkWorktree(logger *slog.Logger, dir string) error {
	repo, err := gitrepo.Open(dir)
	if errors.Is(err, gitrepo.ErrNoRepository) {
		logger.Info("not a git repository, skipping worktree check", "dir", dir)
		return nil
	}
	if err != nil {
		return err
	}
	if branch, err := repo.Branch(); err == nil {
		logger.Info("git repository", "branch", branch)
	}
	if err := repo.CheckClean(); err != nil {
		return fmt.Errorf("%w (use --force to write anyway)", err)
	}
	return nil
}

func newModel(cfg *config.Config) (agent.Model, error) {
	switch cfg.Provider {
	case "openai":
		return openai.New(openai.WithModel(cfg.ModelName()))
	default:
		return anthropic.New(anthropic.WithModel(cfg.ModelName()))
	}
}
