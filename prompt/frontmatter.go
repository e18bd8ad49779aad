// Package prompt assembles the messages sent to the model: settings from the
// prompt file's front matter, project files for context and the rendered
// templates.
package prompt

import (
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// A Format identifies how a front matter block was written.
type Format int

const (
	// FormatNone means the prompt has no front matter.
	FormatNone Format = iota
	FormatJSON
	FormatTOML
	FormatYAML
	// FormatUnknown means a block was delimited but no format could read it.
	// The block is then kept as part of the prompt.
	FormatUnknown
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

const delimiter = "---"

type decoder struct {
	format Format
	decode func(s string, v any) error
}

// decoders are tried in order; the first one that reads the block as a table
// wins.
var decoders = []decoder{
	{FormatJSON, func(s string, v any) error { return json.Unmarshal([]byte(s), v) }},
	{FormatTOML, func(s string, v any) error { _, err := toml.Decode(s, v); return err }},
	{FormatYAML, func(s string, v any) error { return yaml.Unmarshal([]byte(s), v) }},
}

// SplitFrontMatter separates a leading block delimited by --- lines from the
// prompt body and decodes it onto settings. Keys missing from the block leave
// settings untouched. A block no decoder understands is not an error: the
// whole source is returned as the body with FormatUnknown.
func SplitFrontMatter(src string, settings any) (string, Format, error) {
	block, body, ok := cut(src)
	if !ok {
		return src, FormatNone, nil
	}

	for _, d := range decoders {
		var table map[string]any
		if err := d.decode(block, &table); err != nil || table == nil {
			continue
		}
		if err := d.decode(block, settings); err != nil {
			return "", d.format, err
		}
		return body, d.format, nil
	}
	return src, FormatUnknown, nil
}

func cut(src string) (string, string, bool) {
	s := strings.TrimPrefix(src, "\ufeff")
	first, rest, ok := strings.Cut(s, "\n")
	if !ok || strings.TrimSpace(first) != delimiter {
		return "", "", false
	}

	for off := 0; off <= len(rest); {
		line, next, found := strings.Cut(rest[off:], "\n")
		if strings.TrimSpace(line) == delimiter {
			body := ""
			if found {
				body = next
			}
			return rest[:off], body, true
		}
		if !found {
			break
		}
		off += len(line) + 1
	}
	return "", "", false
}
