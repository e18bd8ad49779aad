package parser_test

import (
	"strings"

	"github.com/acrmp/codeprompt/parser"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	var (
		events []parser.Event
		p      *parser.Parser
		opts   []parser.Option
	)

	BeforeEach(func() {
		events = nil
		opts = nil
	})

	JustBeforeEach(func() {
		p = parser.New(func(e parser.Event) {
			events = append(events, e)
		}, opts...)
	})

	It("parses a single block delivered in one chunk", func() {
		input := "File path: ./src/test.ts\n```\nconst x = 1;\n```\n"
		Expect(p.ProcessChunk(input)).To(Succeed())
		p.Finish()

		Expect(events).To(Equal([]parser.Event{
			text(input),
			start("./src/test.ts"),
			end("./src/test.ts", "const x = 1;"),
		}))
	})

	It("emits the block end before finish when the closing fence is complete", func() {
		Expect(p.ProcessChunk("File path: ./src/test.ts\n```\nconst x = 1;\n```\n")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			start("./src/test.ts"),
			end("./src/test.ts", "const x = 1;"),
		}))
	})

	It("parses a block split across chunks inside the marker, the fence and the content", func() {
		for _, c := range []string{"File pa", "th: ./src/test.ts\n``", "`\nconst x", " = 1;\n```\n"} {
			Expect(p.ProcessChunk(c)).To(Succeed())
		}
		p.Finish()

		Expect(structural(events)).To(Equal([]parser.Event{
			start("./src/test.ts"),
			end("./src/test.ts", "const x = 1;"),
		}))
	})

	It("echoes every chunk before any event derived from it", func() {
		Expect(p.ProcessChunk("File path: a.go\n```go\n")).To(Succeed())
		Expect(p.ProcessChunk("")).To(Succeed())
		Expect(p.ProcessChunk("package a\n```\n")).To(Succeed())

		Expect(events).To(Equal([]parser.Event{
			text("File path: a.go\n```go\n"),
			start("a.go"),
			text(""),
			text("package a\n```\n"),
			end("a.go", "package a"),
		}))
	})

	It("accepts a language tag on the opening fence", func() {
		Expect(p.ProcessChunk("File path: cmd/main.go\n```go \npackage main\n```\n")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			start("cmd/main.go"),
			end("cmd/main.go", "package main"),
		}))
	})

	It("parses consecutive blocks independently", func() {
		Expect(p.ProcessChunk("File path: a.go\n```go\npackage a\n```\nFile path: b.go\n```go\npackage b\n```\n")).To(Succeed())
		p.Finish()

		Expect(structural(events)).To(Equal([]parser.Event{
			start("a.go"),
			end("a.go", "package a"),
			start("b.go"),
			end("b.go", "package b"),
		}))
	})

	It("flushes the prose before a marker and at the end", func() {
		Expect(p.ProcessChunk("Here you go:\n\nFile path: a.txt\n```\nhi\n```\nEnjoy.")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			prose("Here you go:\n\n"),
			start("a.txt"),
			end("a.txt", "hi"),
		}))

		p.Finish()
		Expect(structural(events)).To(Equal([]parser.Event{
			prose("Here you go:\n\n"),
			start("a.txt"),
			end("a.txt", "hi"),
			prose("Enjoy."),
		}))
	})

	It("holds back a partial marker at the end of a chunk", func() {
		Expect(p.ProcessChunk("Intro\nFile pa")).To(Succeed())
		Expect(structural(events)).To(BeEmpty())

		Expect(p.ProcessChunk("th: a.go\n```\nx\n```\n")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			prose("Intro\n"),
			start("a.go"),
			end("a.go", "x"),
		}))
	})

	It("strips blank lines around the contents but keeps indentation", func() {
		Expect(p.ProcessChunk("File path: a.py\n```python\n\n\n    return 1\n\n```\n")).To(Succeed())
		Expect(structural(events)).To(ContainElement(end("a.py", "    return 1")))
	})

	It("only closes on a line holding just the fence", func() {
		Expect(p.ProcessChunk("File path: README.md\n```md\nuse ``` inline\n```sh\nls\n  ```  \nrest\n```\n")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			start("README.md"),
			end("README.md", "use ``` inline\n```sh\nls"),
		}))
	})

	It("closes a fence without a trailing newline at finish", func() {
		Expect(p.ProcessChunk("File path: a.go\n```\npackage a\n```")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{start("a.go")}))

		p.Finish()
		Expect(structural(events)).To(Equal([]parser.Event{
			start("a.go"),
			end("a.go", "package a"),
		}))
	})

	It("reports an empty block", func() {
		Expect(p.ProcessChunk("File path: empty.txt\n```\n```\n")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			start("empty.txt"),
			end("empty.txt", ""),
		}))
	})

	It("allows duplicate paths", func() {
		Expect(p.ProcessChunk("File path: a\n```\n1\n```\nFile path: a\n```\n2\n```\n")).To(Succeed())
		Expect(structural(events)).To(Equal([]parser.Event{
			start("a"), end("a", "1"), start("a"), end("a", "2"),
		}))
	})

	Context("when there is no marker", func() {
		It("emits only prose", func() {
			input := "Some prose\n```go\nfmt.Println()\n```\n"
			Expect(p.ProcessChunk(input)).To(Succeed())
			Expect(structural(events)).To(BeEmpty())

			p.Finish()
			Expect(events).To(Equal([]parser.Event{text(input), prose(input)}))
		})
	})

	Context("when the marker is not followed by a fence", func() {
		It("treats the marker as prose", func() {
			input := "File path: ./x.go\nand then nothing"
			Expect(p.ProcessChunk(input)).To(Succeed())
			p.Finish()
			Expect(structural(events)).To(Equal([]parser.Event{prose(input)}))
		})
	})

	Context("when the path is not a relative path token", func() {
		DescribeTable("treats the marker as prose",
			func(input string) {
				Expect(p.ProcessChunk(input)).To(Succeed())
				p.Finish()
				Expect(structural(events)).To(Equal([]parser.Event{prose(input)}))
			},
			Entry("absolute", "File path: /etc/passwd\n```\nx\n```\n"),
			Entry("spaces", "File path: my file.go\n```\nx\n```\n"),
			Entry("missing", "File path: \n```\nx\n```\n"),
			Entry("drive letter", "File path: C:\\x.go\n```\nx\n```\n"),
		)
	})

	Context("when the stream ends inside a block", func() {
		It("flushes the marker and partial contents as prose", func() {
			Expect(p.ProcessChunk("Intro\nFile path: a.go\n```go\npart")).To(Succeed())
			Expect(p.ProcessChunk("ial")).To(Succeed())
			p.Finish()

			Expect(structural(events)).To(Equal([]parser.Event{
				prose("Intro\n"),
				start("a.go"),
				prose("File path: a.go\n```go\npartial"),
			}))
		})
	})

	Context("after finish", func() {
		It("rejects further input", func() {
			p.Finish()
			Expect(p.ProcessChunk("more")).To(MatchError(parser.ErrFinished))
			_, err := p.Write([]byte("more"))
			Expect(err).To(MatchError(parser.ErrFinished))
		})

		It("does not flush twice", func() {
			Expect(p.ProcessChunk("trailing prose")).To(Succeed())
			p.Finish()
			p.Finish()
			Expect(structural(events)).To(Equal([]parser.Event{prose("trailing prose")}))
		})
	})

	It("can be written to", func() {
		n, err := p.Write([]byte("File path: a\n```\nx\n```\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(len("File path: a\n```\nx\n```\n")))
		Expect(structural(events)).To(HaveLen(2))
	})

	Context("with XML fences", func() {
		BeforeEach(func() {
			opts = []parser.Option{parser.WithXMLTag("source")}
		})

		It("parses the element contents", func() {
			Expect(p.ProcessChunk("File path: ./main.go\n<source>content</source>")).To(Succeed())
			p.Finish()
			Expect(structural(events)).To(Equal([]parser.Event{
				start("./main.go"),
				end("./main.go", "content"),
			}))
		})

		It("accepts attributes on the opening tag", func() {
			Expect(p.ProcessChunk("File path: a.go\n<source lang=\"go\">\npackage a\n</source >\n")).To(Succeed())
			Expect(structural(events)).To(Equal([]parser.Event{
				start("a.go"),
				end("a.go", "package a"),
			}))
		})

		DescribeTable("reports empty elements",
			func(input string) {
				Expect(p.ProcessChunk(input)).To(Succeed())
				Expect(structural(events)).To(Equal([]parser.Event{
					start("empty.txt"),
					end("empty.txt", ""),
				}))
			},
			Entry("self-closing", "File path: empty.txt\n<source/>"),
			Entry("self-closing with space", "File path: empty.txt <source />"),
			Entry("open and close", "File path: empty.txt\n<source></source>"),
		)

		It("ignores other elements", func() {
			Expect(p.ProcessChunk("File path: a.go\n<sources>x</sources>\n")).To(Succeed())
			p.Finish()
			Expect(structural(events)).To(Equal([]parser.Event{
				prose("File path: a.go\n<sources>x</sources>\n"),
			}))
		})

		It("does not treat backtick fences as blocks", func() {
			Expect(p.ProcessChunk("File path: a.go\n```\nx\n```\n")).To(Succeed())
			p.Finish()
			Expect(structural(events)).To(HaveLen(1))
			Expect(structural(events)[0].Kind).To(Equal(parser.EventTextBlock))
		})

		It("waits for a closing tag split across chunks", func() {
			Expect(p.ProcessChunk("File path: a.go\n<source>x</sou")).To(Succeed())
			Expect(structural(events)).To(Equal([]parser.Event{start("a.go")}))
			Expect(p.ProcessChunk("rce>")).To(Succeed())
			Expect(structural(events)).To(Equal([]parser.Event{start("a.go"), end("a.go", "x")}))
		})
	})

	Describe("chunk boundaries", func() {
		DescribeTable("produce the same events however the input is split",
			func(doc string, opts ...parser.Option) {
				whole := feed([]string{doc}, opts...)
				Expect(textOf(whole)).To(Equal(doc))
				want := structural(whole)

				for i := 0; i <= len(doc); i++ {
					for j := i; j <= len(doc); j++ {
						got := feed([]string{doc[:i], doc[i:j], doc[j:]}, opts...)
						Expect(structural(got)).To(Equal(want), "split at %d and %d", i, j)
						Expect(textOf(got)).To(Equal(doc))
					}
				}

				bytewise := feed(strings.Split(doc, ""), opts...)
				Expect(structural(bytewise)).To(Equal(want))
			},
			Entry("backtick blocks with prose",
				"Here is the code.\n\nFile path: ./src/test.ts\n```ts\nconst x = 1;\n```\n\nFile path: ./src/util.ts\n```\nexport {}\n```\nThat's all.\n"),
			Entry("noise before a block",
				"See File path: nowhere and\nFile path: /abs.txt\n```\nno\n```\nFile path: ok.txt\n\n```\n\nyes\n\n```"),
			Entry("xml blocks",
				"Intro\nFile path: ./a.go\n<source lang=\"go\">\npackage a\n</source>\nFile path: b.txt <source/>\nFile path: c.txt\n<source></source>\nFile path: d.txt\n<source>tail",
				parser.WithXMLTag("source")),
		)

		It("recognizes the noisy document", func() {
			doc := "See File path: nowhere and\nFile path: /abs.txt\n```\nno\n```\nFile path: ok.txt\n\n```\n\nyes\n\n```"
			Expect(structural(feed([]string{doc}))).To(Equal([]parser.Event{
				prose("See File path: nowhere and\nFile path: /abs.txt\n```\nno\n```\n"),
				start("ok.txt"),
				end("ok.txt", "yes"),
			}))
		})

		It("recognizes the xml document", func() {
			doc := "Intro\nFile path: ./a.go\n<source lang=\"go\">\npackage a\n</source>\nFile path: b.txt <source/>\nFile path: c.txt\n<source></source>\nFile path: d.txt\n<source>tail"
			Expect(structural(feed([]string{doc}, parser.WithXMLTag("source")))).To(Equal([]parser.Event{
				prose("Intro\n"),
				start("./a.go"),
				end("./a.go", "package a"),
				start("b.txt"),
				end("b.txt", ""),
				start("c.txt"),
				end("c.txt", ""),
				start("d.txt"),
				prose("File path: d.txt\n<source>tail"),
			}))
		})
	})
})

func feed(chunks []string, opts ...parser.Option) []parser.Event {
	var events []parser.Event
	p := parser.New(func(e parser.Event) {
		events = append(events, e)
	}, opts...)
	for _, c := range chunks {
		Expect(p.ProcessChunk(c)).To(Succeed())
	}
	p.Finish()
	return events
}

func structural(events []parser.Event) []parser.Event {
	var s []parser.Event
	for _, e := range events {
		if e.Kind != parser.EventText {
			s = append(s, e)
		}
	}
	return s
}

func textOf(events []parser.Event) string {
	var b strings.Builder
	for _, e := range events {
		if e.Kind == parser.EventText {
			b.WriteString(e.Content)
		}
	}
	return b.String()
}

func text(s string) parser.Event {
	return parser.Event{Kind: parser.EventText, Content: s}
}

func prose(s string) parser.Event {
	return parser.Event{Kind: parser.EventTextBlock, Content: s}
}

func start(path string) parser.Event {
	return parser.Event{Kind: parser.EventStartFileBlock, Path: path}
}

func end(path, contents string) parser.Event {
	return parser.Event{Kind: parser.EventEndFileBlock, File: parser.FileBlock{Path: path, Contents: contents}}
}
