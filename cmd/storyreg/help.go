package main

import (
	"embed"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/storyreg/pkg/cobrax/topics"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installHelpTopics adds `help <topic>` for the embedded topic documents.
func installHelpTopics(rootCmd *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}

	var renderer topics.Renderer = &topics.PlainRenderer{}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		renderer = topics.NewGlamourRenderer()
	}

	tm, err := topics.Load(sub, topics.Options{Renderer: renderer})
	if err != nil {
		return err
	}
	tm.Install(rootCmd)
	return nil
}
