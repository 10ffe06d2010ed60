package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tagmend/tagmend/internal/engine"
	"github.com/tagmend/tagmend/internal/parser"
	"github.com/tagmend/tagmend/internal/tags"
	"github.com/tagmend/tagmend/internal/ui"
)

var (
	tagsFlags   opFlags
	tagsFiles   string
	tagsSuggest bool
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags, inspect a tag's files, or suggest cleanups",
	Long: `List every indexed tag with its file count. With --files <tag>, list
the files containing that tag, including line and section context for
inline occurrences. With --suggest, emit a rename plan (YAML, ready
for apply) normalizing tags to slug form.`,
	Example: `  tagmend tags
  tagmend tags --files projects/work
  tagmend tags --suggest > plan.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := scanOptions(&tagsFlags)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		idx, scanWarnings, err := buildIndex(opts)
		if err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		switch {
		case tagsSuggest:
			return runTagsSuggest(idx.Tags(), func(c string) string { return idx.RawForm(c) })
		case tagsFiles != "":
			return runTagsFiles(idx.FilesFor(tags.Normalize(tagsFiles)), scanWarnings)
		default:
			return runTagsList(idx.Tags(), idx.Count, idx.RawForm, scanWarnings)
		}
	},
}

func runTagsList(canonical []string, count func(string) int, rawForm func(string) string, warnings []Warning) error {
	if isJSONOutput() {
		type tagView struct {
			Tag   string `json:"tag"`
			Raw   string `json:"raw,omitempty"`
			Files int    `json:"files"`
		}
		views := make([]tagView, 0, len(canonical))
		for _, c := range canonical {
			v := tagView{Tag: c, Files: count(c)}
			if raw := rawForm(c); raw != c {
				v.Raw = raw
			}
			views = append(views, v)
		}
		data := map[string]interface{}{"tags": views}
		if len(warnings) > 0 {
			outputSuccessWithWarnings(data, warnings, &Meta{Count: len(views)})
		} else {
			outputSuccess(data, &Meta{Count: len(views)})
		}
		return nil
	}

	if len(canonical) == 0 {
		fmt.Println(ui.Info("no tags found"))
		return nil
	}
	for _, c := range canonical {
		fmt.Printf("%s %s\n", ui.Tag(c), ui.Muted.Render(fmt.Sprintf("(%d)", count(c))))
	}
	for _, w := range warnings {
		fmt.Println(ui.Warning(w.Message))
	}
	return nil
}

// tagOccurrenceView is one located occurrence of the queried tag.
type tagOccurrenceView struct {
	Line    int    `json:"line,omitempty"`
	Heading string `json:"heading,omitempty"`
	Raw     string `json:"raw"`
	Source  string `json:"source"` // metadata or inline
}

type tagFileView struct {
	Path        string              `json:"path"`
	Occurrences []tagOccurrenceView `json:"occurrences,omitempty"`
}

func runTagsFiles(files []string, warnings []Warning) error {
	canonical := tags.Normalize(tagsFiles)

	var views []tagFileView
	for _, path := range files {
		view := tagFileView{Path: path}

		content, err := os.ReadFile(filepath.Join(getVaultPath(), filepath.FromSlash(path)))
		if err == nil {
			doc := parser.ParseDocument(path, content)
			for _, raw := range doc.MetadataTags() {
				if tags.Normalize(raw) == canonical {
					view.Occurrences = append(view.Occurrences, tagOccurrenceView{Raw: raw, Source: "metadata"})
				}
			}
			headings := parser.ExtractHeadings(doc.Body)
			for _, loc := range doc.InlineTags() {
				if tags.Normalize(loc.Raw) != canonical {
					continue
				}
				occ := tagOccurrenceView{Line: loc.Line, Raw: loc.Raw, Source: "inline"}
				if h := parser.HeadingForLine(headings, loc.Line); h != nil {
					occ.Heading = h.Text
				}
				view.Occurrences = append(view.Occurrences, occ)
			}
		}
		views = append(views, view)
	}

	if isJSONOutput() {
		data := map[string]interface{}{"tag": canonical, "files": views}
		if len(warnings) > 0 {
			outputSuccessWithWarnings(data, warnings, &Meta{Count: len(views)})
		} else {
			outputSuccess(data, &Meta{Count: len(views)})
		}
		return nil
	}

	if len(views) == 0 {
		fmt.Println(ui.Info(fmt.Sprintf("no files carry %s", ui.Tag(canonical))))
		return nil
	}
	for _, v := range views {
		fmt.Println(ui.FilePath(v.Path))
		for _, occ := range v.Occurrences {
			switch {
			case occ.Source == "metadata":
				fmt.Printf("  metadata: %s\n", occ.Raw)
			case occ.Heading != "":
				fmt.Printf("  line %d (%s): #%s\n", occ.Line, occ.Heading, occ.Raw)
			default:
				fmt.Printf("  line %d: #%s\n", occ.Line, occ.Raw)
			}
		}
	}
	for _, w := range warnings {
		fmt.Println(ui.Warning(w.Message))
	}
	return nil
}

func runTagsSuggest(canonical []string, rawForm func(string) string) error {
	rawTags := make([]string, 0, len(canonical))
	for _, c := range canonical {
		rawTags = append(rawTags, rawForm(c))
	}
	suggestions := tags.SuggestCanonical(rawTags)

	plan := engine.Plan{}
	for _, s := range suggestions {
		plan.Operations = append(plan.Operations,
			engine.SuggestedRename(s.From, s.To, "normalize to slug form"))
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"suggestions": suggestions},
			&Meta{Count: len(suggestions)})
		return nil
	}

	if len(plan.Operations) == 0 {
		fmt.Fprintln(os.Stderr, ui.Info("all tags are already in canonical form"))
		return nil
	}

	data, err := yaml.Marshal(plan)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	fmt.Print(string(data))
	return nil
}

func init() {
	tagsCmd.Flags().StringVar(&tagsFiles, "files", "", "List files containing the given tag")
	tagsCmd.Flags().BoolVar(&tagsSuggest, "suggest", false, "Emit a YAML rename plan normalizing tags to slug form")
	tagsCmd.Flags().StringVar(&tagsFlags.types, "types", "", "Tag sources: metadata, inline, or both")
	tagsCmd.Flags().BoolVar(&tagsFlags.noFilter, "no-filter", false, "Index noise tags (pure numerals etc.) too")
	rootCmd.AddCommand(tagsCmd)
}
