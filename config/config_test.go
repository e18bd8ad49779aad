package config_test

import (
	"os"
	"path/filepath"

	"github.com/acrmp/codeprompt/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "config")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		err := os.RemoveAll(dir)
		Expect(err).ToNot(HaveOccurred())
	})

	Context("when there is no config file", func() {
		It("returns the defaults", func() {
			cfg, err := config.Load(dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(*cfg).To(Equal(config.Defaults()))
			Expect(cfg.ModelName()).To(Equal("claude-3-5-sonnet-20240620"))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("when there is a config file", func() {
		BeforeEach(func() {
			err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(`
provider = "openai"
xml_tag = "source"
include = ["*.go", "docs/"]
concurrency = 2
`), 0600)
			Expect(err).ToNot(HaveOccurred())
		})

		It("overrides the defaults with the values it sets", func() {
			cfg, err := config.Load(dir)
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.Provider).To(Equal("openai"))
			Expect(cfg.XMLTag).To(Equal("source"))
			Expect(cfg.Include).To(Equal([]string{"*.go", "docs/"}))
			Expect(cfg.Concurrency).To(Equal(2))
			Expect(cfg.MaxTokens).To(Equal(4096))
			Expect(cfg.ModelName()).To(Equal("gpt-4o"))
		})
	})

	Context("when the config file is not valid TOML", func() {
		BeforeEach(func() {
			err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(`provider = `), 0600)
			Expect(err).ToNot(HaveOccurred())
		})

		It("errors", func() {
			_, err := config.Load(dir)
			Expect(err).To(MatchError(ContainSubstring("parsing")))
		})
	})

	Describe("validation", func() {
		var cfg config.Config

		BeforeEach(func() {
			cfg = config.Defaults()
		})

		It("rejects an unknown provider", func() {
			cfg.Provider = "carrier-pigeon"
			Expect(cfg.Validate()).To(MatchError(`unknown provider: "carrier-pigeon"`))
		})

		It("rejects a concurrency below one", func() {
			cfg.Concurrency = 0
			Expect(cfg.Validate()).To(MatchError("concurrency must be at least 1, got 0"))
		})

		It("rejects a temperature out of range", func() {
			cfg.Temperature = 3
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("temperature")))
		})

		It("prefers an explicit model", func() {
			cfg.Model = "claude-3-opus-20240229"
			Expect(cfg.ModelName()).To(Equal("claude-3-opus-20240229"))
		})
	})
})
