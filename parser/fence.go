package parser

import (
	"bytes"
)

var (
	markerKeyword = []byte("File path:")
	backticks     = []byte("```")
)

type matchResult int

const (
	noMatch matchResult = iota
	needMore
	matched
)

// A fence knows how to find the delimiters around file contents.
// An empty xmlTag selects backtick fences.
type fence struct {
	xmlTag string
}

// An opening is a marker followed by its opening fence.
type opening struct {
	path  string
	end   int
	empty bool
}

// A closing locates the closing fence of an open block.
type closing struct {
	contentEnd int
	end        int
}

// matchOpening matches a marker and opening fence anchored at the start of
// buf, which must begin with markerKeyword. needMore is returned when buf ends
// before the match can be decided.
func (f fence) matchOpening(buf []byte) (opening, matchResult) {
	i := skip(buf, len(markerKeyword), isBlank)
	start := i
	i = skip(buf, i, isPathByte)
	if i == len(buf) {
		return opening{}, needMore
	}
	if i == start || buf[start] == '/' {
		return opening{}, noMatch
	}
	path := string(buf[start:i])

	i = skip(buf, i, isSpace)
	if i == len(buf) {
		return opening{}, needMore
	}

	var (
		n     int
		empty bool
		r     matchResult
	)
	if f.xmlTag == "" {
		n, r = matchBacktickOpen(buf[i:])
	} else {
		n, empty, r = f.matchXMLOpen(buf[i:])
	}
	if r != matched {
		return opening{}, r
	}
	return opening{path: path, end: i + n, empty: empty}, matched
}

// matchBacktickOpen matches ``` with an optional language tag ending in a
// newline.
func matchBacktickOpen(s []byte) (int, matchResult) {
	if r := matchPrefix(s, backticks); r != matched {
		return 0, r
	}
	i := skip(s, len(backticks), isLangByte)
	i = skip(s, i, isBlank)
	if i == len(s) {
		return 0, needMore
	}
	if s[i] != '\n' {
		return 0, noMatch
	}
	return i + 1, matched
}

// matchXMLOpen matches <tag>, <tag/> or <tag attr="...">.
func (f fence) matchXMLOpen(s []byte) (int, bool, matchResult) {
	tag := []byte("<" + f.xmlTag)
	if r := matchPrefix(s, tag); r != matched {
		return 0, false, r
	}
	i := len(tag)
	if i == len(s) {
		return 0, false, needMore
	}
	switch {
	case s[i] == '>':
		return i + 1, false, matched
	case s[i] == '/':
		if i+1 == len(s) {
			return 0, false, needMore
		}
		if s[i+1] == '>' {
			return i + 2, true, matched
		}
		return 0, false, noMatch
	case !isSpace(s[i]):
		return 0, false, noMatch
	}
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '<':
			return 0, false, noMatch
		case '>':
			return j + 1, s[j-1] == '/', matched
		}
	}
	return 0, false, needMore
}

// findClose searches buf, the contents of an open block, for the closing
// fence starting at from. It returns the position to resume searching at when
// no closing fence is found yet. atEOF allows a fence without a trailing
// newline to close the block.
func (f fence) findClose(buf []byte, from int, atEOF bool) (closing, int, bool) {
	if f.xmlTag == "" {
		return findBacktickClose(buf, from, atEOF)
	}
	return f.findXMLClose(buf, from)
}

// findBacktickClose looks for a line holding only ```. from is always the
// start of a line.
func findBacktickClose(buf []byte, from int, atEOF bool) (closing, int, bool) {
	for ls := from; ; {
		nl := bytes.IndexByte(buf[ls:], '\n')
		if nl < 0 {
			if atEOF && isBacktickLine(buf[ls:]) {
				return closing{contentEnd: ls, end: len(buf)}, len(buf), true
			}
			return closing{}, ls, false
		}
		if isBacktickLine(buf[ls : ls+nl]) {
			return closing{contentEnd: ls, end: ls + nl + 1}, ls, true
		}
		ls += nl + 1
	}
}

func isBacktickLine(line []byte) bool {
	return bytes.Equal(bytes.Trim(line, " \t\r"), backticks)
}

// findXMLClose looks for </tag> anywhere after from.
func (f fence) findXMLClose(buf []byte, from int) (closing, int, bool) {
	tag := []byte("</" + f.xmlTag)
	for {
		i := bytes.Index(buf[from:], tag)
		if i < 0 {
			return closing{}, max(from, len(buf)-len(tag)+1), false
		}
		i += from
		j := skip(buf, i+len(tag), isSpace)
		if j == len(buf) {
			return closing{}, i, false
		}
		if buf[j] == '>' {
			return closing{contentEnd: i, end: j + 1}, i, true
		}
		from = i + 1
	}
}

// matchPrefix reports whether s starts with prefix, or could once more input
// arrives.
func matchPrefix(s, prefix []byte) matchResult {
	if len(s) < len(prefix) {
		if bytes.HasPrefix(prefix, s) {
			return needMore
		}
		return noMatch
	}
	if bytes.HasPrefix(s, prefix) {
		return matched
	}
	return noMatch
}

func skip(s []byte, i int, fn func(byte) bool) int {
	for i < len(s) && fn(s[i]) {
		i++
	}
	return i
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isSpace(c byte) bool {
	return isBlank(c) || c == '\n'
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func isPathByte(c byte) bool {
	return isWordByte(c) || c == '.' || c == '-' || c == '/'
}

func isLangByte(c byte) bool {
	return isWordByte(c) || c == '.' || c == '-' || c == '+' || c == '#'
}
