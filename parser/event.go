// Package parser recognizes file blocks in a streamed model response.
//
// A file block is a marker line naming a path followed by a fenced region
// holding the file contents:
//
//	File path: ./src/main.go
//	```go
//	package main
//	```
//
// The fence is either triple backticks or a named XML element such as
// <source>...</source>. Input may arrive in arbitrarily split chunks; events
// are emitted as soon as they can be decided and never re-emitted.
package parser

// A Kind identifies the type of an Event.
type Kind int

const (
	// EventText echoes a chunk exactly as it was received.
	EventText Kind = iota + 1
	// EventTextBlock carries a run of prose found between file blocks.
	EventTextBlock
	// EventStartFileBlock reports a marker and its opening fence.
	EventStartFileBlock
	// EventEndFileBlock reports the closing fence and the completed file.
	EventEndFileBlock
)

func (k Kind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventTextBlock:
		return "text-block"
	case EventStartFileBlock:
		return "start-file-block"
	case EventEndFileBlock:
		return "end-file-block"
	}
	return "unknown"
}

// A FileBlock is a single file extracted from a response.
type FileBlock struct {
	Path     string
	Contents string
}

// An Event is emitted by a Parser as input is classified.
// Content is set for text and text-block events, Path for start-file-block
// events and File for end-file-block events.
type Event struct {
	Kind    Kind
	Content string
	Path    string
	File    FileBlock
}
