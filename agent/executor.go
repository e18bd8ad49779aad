package agent

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// FilesEnv names the environment variable listing the written files, one per
// line, for commands run by a BashExecutor.
const FilesEnv = "CODEPROMPT_FILES"

// A BashExecutor runs a follow-up command, such as a formatter, once the
// generated files are written.
type BashExecutor struct {
	logger *slog.Logger
	dir    string
}

// NewBashExecutor creates a BashExecutor.
// The command executes in the working directory specified with dir.
func NewBashExecutor(logger *slog.Logger, dir string) *BashExecutor {
	return &BashExecutor{logger: logger, dir: dir}
}

// Execute runs cmd with bash and returns the combined output of stdout and
// stderr as a string as well as any error. The written files are passed in
// FilesEnv.
func (b *BashExecutor) Execute(ctx context.Context, cmd string, files []string) (string, error) {
	b.logger.Info("executing command", "command", cmd, "files", len(files))
	c := exec.CommandContext(ctx, "bash", "-c", cmd)
	c.Dir = b.dir
	c.Env = append(os.Environ(), FilesEnv+"="+strings.Join(files, "\n"))

	o, err := c.CombinedOutput()
	return string(o), err
}
