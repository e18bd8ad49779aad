package prompt

import (
	"fmt"
	"os"

	"github.com/tmc/langchaingo/prompts"
)

// DefaultSystemTemplate instructs the model to answer with file blocks the
// parser understands.
const DefaultSystemTemplate = `You are an expert software engineer working in an existing project.
Answer the request by writing complete files.

For every file you create or change, write a line of the form

File path: ./relative/path/to/file

{{- if .xml_tag}}
immediately followed by the complete contents of the file wrapped in <{{.xml_tag}}></{{.xml_tag}}> tags.
{{- else}}
immediately followed by the complete contents of the file in a fenced code block using three backticks.
{{- end}}

Always write whole files, never partial snippets or diffs. Paths are relative to the project root.
Keep any explanation short and outside of the file blocks.`

// DefaultUserTemplate combines the request with the project files gathered
// for context.
const DefaultUserTemplate = `{{- if .files}}These are the relevant files in the project:
{{range .files}}
File path: ./{{.Path}}
{{if $.xml_tag}}<{{$.xml_tag}}>
{{.Contents}}
</{{$.xml_tag}}>{{else}}` + "```" + `
{{.Contents}}
` + "```" + `{{end}}
{{end}}
{{end -}}
{{.prompt}}`

// Input is the data available to the templates.
type Input struct {
	Prompt string
	Files  []File
	XMLTag string
}

// Messages holds the rendered system and user prompts.
type Messages struct {
	System string
	User   string
}

// Build renders the system and user prompts. An empty systemTemplatePath
// selects DefaultSystemTemplate.
func Build(systemTemplatePath string, in Input) (*Messages, error) {
	system := DefaultSystemTemplate
	if systemTemplatePath != "" {
		b, err := os.ReadFile(systemTemplatePath)
		if err != nil {
			return nil, fmt.Errorf("reading system template: %w", err)
		}
		system = string(b)
	}

	values := map[string]any{
		"prompt":  in.Prompt,
		"files":   in.Files,
		"xml_tag": in.XMLTag,
	}

	s, err := render(system, values)
	if err != nil {
		return nil, fmt.Errorf("rendering system prompt: %w", err)
	}
	u, err := render(DefaultUserTemplate, values)
	if err != nil {
		return nil, fmt.Errorf("rendering user prompt: %w", err)
	}
	return &Messages{System: s, User: u}, nil
}

func render(tmpl string, values map[string]any) (string, error) {
	vars := make([]string, 0, len(values))
	for k := range values {
		vars = append(vars, k)
	}
	pt := prompts.NewPromptTemplate(tmpl, vars)
	pt.TemplateFormat = prompts.TemplateFormatGoTemplate
	return pt.Format(values)
}
