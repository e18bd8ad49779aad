package parser

import "strings"

// A Collector accumulates the files and prose reported by a Parser.
type Collector struct {
	files []FileBlock
	prose []string
}

// Handle records e. It is suitable as a Parser handler.
func (c *Collector) Handle(e Event) {
	switch e.Kind {
	case EventEndFileBlock:
		c.files = append(c.files, e.File)
	case EventTextBlock:
		c.prose = append(c.prose, e.Content)
	}
}

// Files returns the completed files in the order their blocks closed.
// A path appearing more than once is returned more than once.
func (c *Collector) Files() []FileBlock {
	return c.files
}

// Prose returns the text-blocks joined by blank lines.
func (c *Collector) Prose() string {
	return strings.Join(c.prose, "\n\n")
}

// ParseString parses a complete response.
func ParseString(s string, opts ...Option) *Collector {
	c := &Collector{}
	p := New(c.Handle, opts...)
	_ = p.ProcessChunk(s)
	p.Finish()
	return c
}
