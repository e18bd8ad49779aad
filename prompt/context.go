package prompt

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"
)

// A File is a project file included in the prompt for context.
type File struct {
	Path     string // slash separated, relative to the project root
	Contents string
}

// GatherOptions selects the files sent to the model.
// Patterns use .gitignore syntax.
type GatherOptions struct {
	Include     []string
	Exclude     []string
	MaxFileSize int
}

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"vendor":       {},
	".venv":        {},
	"__pycache__":  {},
}

// Gather reads the files under root matching the include patterns. Files
// ignored by the project's .gitignore, matching an exclude pattern, larger
// than the size limit or holding binary data are skipped. Nothing is gathered
// without include patterns.
func Gather(logger *slog.Logger, root string, opts GatherOptions) ([]File, error) {
	if len(opts.Include) == 0 {
		return nil, nil
	}
	include := ignore.CompileIgnoreLines(opts.Include...)
	exclude := ignore.CompileIgnoreLines(opts.Exclude...)
	gi := loadGitignore(root)

	var files []File
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		if !include.MatchesPath(rel) || exclude.MatchesPath(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if opts.MaxFileSize > 0 && info.Size() > int64(opts.MaxFileSize) {
			logger.Warn("skipping large file", "path", rel, "size", info.Size())
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.IndexByte(data, 0) >= 0 {
			logger.Debug("skipping binary file", "path", rel)
			return nil
		}

		logger.Debug("including file", "path", rel)
		files = append(files, File{Path: rel, Contents: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
