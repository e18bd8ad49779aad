package parser

import (
	"bytes"
	"errors"
	"strings"
	"unicode"
)

// ErrFinished is returned when input is supplied after Finish.
var ErrFinished = errors.New("parser: input after finish")

type mode int

const (
	scanning mode = iota
	inFileBlock
)

// An Option configures a Parser.
type Option func(*Parser)

// WithXMLTag makes the parser expect file contents wrapped in the named XML
// element rather than backtick fences.
func WithXMLTag(tag string) Option {
	return func(p *Parser) {
		p.fence = fence{xmlTag: tag}
	}
}

// A Parser incrementally extracts file blocks from chunks of text.
// It is not safe for concurrent use.
type Parser struct {
	handler func(Event)
	fence   fence

	buf    []byte
	cursor int
	mode   mode

	// set while mode is inFileBlock
	path    string
	opening string

	finished bool
}

// New creates a Parser that reports events to handler in the order they are
// decided.
func New(handler func(Event), opts ...Option) *Parser {
	p := &Parser{handler: handler}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessChunk feeds the next chunk of the response to the parser. Malformed
// input is never an error; it surfaces as prose instead.
func (p *Parser) ProcessChunk(chunk string) error {
	if p.finished {
		return ErrFinished
	}
	p.buf = append(p.buf, chunk...)
	p.emit(Event{Kind: EventText, Content: chunk})
	p.advance(false)
	return nil
}

// Write implements io.Writer over ProcessChunk.
func (p *Parser) Write(b []byte) (int, error) {
	if err := p.ProcessChunk(string(b)); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Finish signals the end of the response. Trailing prose is flushed as a
// text-block. A block whose closing fence never arrived is flushed verbatim,
// marker included, as a text-block and produces no end-file-block event.
func (p *Parser) Finish() {
	if p.finished {
		return
	}
	p.finished = true
	p.advance(true)

	rest := string(p.buf)
	if p.mode == inFileBlock {
		rest = p.opening + rest
		p.mode = scanning
	}
	p.flushText(rest)
	p.buf = nil
	p.cursor = 0
}

func (p *Parser) advance(atEOF bool) {
	for {
		var progressed bool
		switch p.mode {
		case scanning:
			progressed = p.openBlock()
		case inFileBlock:
			progressed = p.closeBlock(atEOF)
		}
		if !progressed {
			return
		}
	}
}

// openBlock looks for the leftmost marker followed by an opening fence.
func (p *Parser) openBlock() bool {
	for {
		i := bytes.Index(p.buf[p.cursor:], markerKeyword)
		if i < 0 {
			// a partial keyword may sit at the tail
			p.cursor = max(p.cursor, len(p.buf)-len(markerKeyword)+1)
			return false
		}
		start := p.cursor + i

		o, r := p.fence.matchOpening(p.buf[start:])
		switch r {
		case needMore:
			p.cursor = start
			return false
		case noMatch:
			p.cursor = start + 1
			continue
		}

		p.flushText(string(p.buf[:start]))
		p.path = o.path
		p.opening = string(p.buf[start : start+o.end])
		p.consume(start + o.end)
		p.mode = inFileBlock
		p.emit(Event{Kind: EventStartFileBlock, Path: o.path})
		if o.empty {
			p.endBlock("")
		}
		return true
	}
}

func (p *Parser) closeBlock(atEOF bool) bool {
	c, cursor, ok := p.fence.findClose(p.buf, p.cursor, atEOF)
	p.cursor = cursor
	if !ok {
		return false
	}
	contents := trimBlankLines(string(p.buf[:c.contentEnd]))
	p.consume(c.end)
	p.endBlock(contents)
	return true
}

func (p *Parser) endBlock(contents string) {
	p.emit(Event{Kind: EventEndFileBlock, File: FileBlock{Path: p.path, Contents: contents}})
	p.mode = scanning
	p.path = ""
	p.opening = ""
}

// consume drops the first n bytes of the buffer.
func (p *Parser) consume(n int) {
	p.buf = append(p.buf[:0], p.buf[n:]...)
	p.cursor = 0
}

// flushText emits s as a text-block unless it is only whitespace.
func (p *Parser) flushText(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	p.emit(Event{Kind: EventTextBlock, Content: s})
}

func (p *Parser) emit(e Event) {
	if p.handler != nil {
		p.handler(e)
	}
}

// trimBlankLines strips blank lines around s and trailing whitespace, keeping
// the indentation of the first line.
func trimBlankLines(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	lead := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	if nl := strings.LastIndexByte(s[:lead], '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return s
}
