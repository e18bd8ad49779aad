package prompt_test

import (
	"github.com/acrmp/codeprompt/config"
	"github.com/acrmp/codeprompt/prompt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SplitFrontMatter", func() {
	var cfg config.Config

	BeforeEach(func() {
		cfg = config.Defaults()
	})

	It("returns prompts without front matter unchanged", func() {
		body, format, err := prompt.SplitFrontMatter("Write a calculator", &cfg)
		Expect(err).ToNot(HaveOccurred())
		Expect(format).To(Equal(prompt.FormatNone))
		Expect(body).To(Equal("Write a calculator"))
		Expect(cfg).To(Equal(config.Defaults()))
	})

	DescribeTable("decodes the settings",
		func(src string, want prompt.Format) {
			body, format, err := prompt.SplitFrontMatter(src, &cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(format).To(Equal(want))
			Expect(body).To(Equal("Write a calculator\n"))
			Expect(cfg.Provider).To(Equal("openai"))
			Expect(cfg.Include).To(Equal([]string{"*.go"}))
			Expect(cfg.Concurrency).To(Equal(4))
		},
		Entry("json", "---\n{\"provider\": \"openai\", \"include\": [\"*.go\"]}\n---\nWrite a calculator\n", prompt.FormatJSON),
		Entry("toml", "---\nprovider = \"openai\"\ninclude = [\"*.go\"]\n---\nWrite a calculator\n", prompt.FormatTOML),
		Entry("yaml", "---\nprovider: openai\ninclude:\n  - \"*.go\"\n---\nWrite a calculator\n", prompt.FormatYAML),
	)

	Context("when no format can read the block", func() {
		It("keeps the block in the prompt", func() {
			src := "---\nthis is just a horizontal rule\n---\nWrite a calculator"
			body, format, err := prompt.SplitFrontMatter(src, &cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(format).To(Equal(prompt.FormatUnknown))
			Expect(body).To(Equal(src))
			Expect(cfg).To(Equal(config.Defaults()))
		})
	})

	Context("when the block is never closed", func() {
		It("treats the source as the prompt", func() {
			src := "---\nprovider: openai\nWrite a calculator"
			body, format, err := prompt.SplitFrontMatter(src, &cfg)
			Expect(err).ToNot(HaveOccurred())
			Expect(format).To(Equal(prompt.FormatNone))
			Expect(body).To(Equal(src))
		})
	})

	Context("when a setting has the wrong type", func() {
		It("errors", func() {
			_, format, err := prompt.SplitFrontMatter("---\n{\"concurrency\": \"two\"}\n---\nhi", &cfg)
			Expect(format).To(Equal(prompt.FormatJSON))
			Expect(err).To(HaveOccurred())
		})
	})

	It("names formats", func() {
		Expect(prompt.FormatTOML.String()).To(Equal("toml"))
		Expect(prompt.FormatUnknown.String()).To(Equal("unknown"))
	})
})
