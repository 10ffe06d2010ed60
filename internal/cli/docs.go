package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/docs"
	"github.com/tagmend/tagmend/internal/ui"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Show the bundled user guide",
	Long: `Show a topic from the bundled user guide. Without a topic, list the
available topics. Output is rendered for the terminal when attached to
one, plain markdown otherwise.`,
	Example: `  tagmend docs
  tagmend docs plans`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listDocTopics()
		}
		return showDocTopic(args[0])
	},
}

func listDocTopics() error {
	entries, err := docs.FS.ReadDir("guide")
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	var topics []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".md"); ok {
			topics = append(topics, name)
		}
	}
	sort.Strings(topics)

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println(ui.Header("Available topics:"))
	for _, t := range topics {
		fmt.Printf("  %s\n", t)
	}
	fmt.Println(ui.Muted.Render("\nRun: tagmend docs <topic>"))
	return nil
}

func showDocTopic(topic string) error {
	content, err := docs.FS.ReadFile("guide/" + topic + ".md")
	if err != nil {
		return handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("unknown topic %q", topic),
			"Run 'tagmend docs' to list topics")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topic": topic, "content": string(content)}, nil)
		return nil
	}

	if ui.IsTerminal() {
		rendered, err := ui.RenderMarkdown(string(content), ui.TermWidth())
		if err == nil {
			fmt.Print(rendered)
			return nil
		}
	}
	fmt.Print(string(content))
	return nil
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
