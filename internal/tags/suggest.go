package tags

import (
	"strings"

	"github.com/gosimple/slug"
)

// Suggestion proposes renaming an authored tag to a canonical,
// slug-shaped form.
type Suggestion struct {
	From string
	To   string
}

// SuggestCanonical proposes slugified forms for tags whose authored
// form deviates from them. Hierarchical tags are slugified per
// segment so the hierarchy survives.
func SuggestCanonical(rawTags []string) []Suggestion {
	var out []Suggestion
	seen := make(map[string]bool)

	for _, raw := range rawTags {
		canonical := Normalize(raw)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true

		segments := Segments(canonical)
		for i, seg := range segments {
			segments[i] = slug.Make(seg)
		}
		slugged := strings.Join(segments, "/")

		if slugged != "" && slugged != canonical {
			out = append(out, Suggestion{From: canonical, To: slugged})
		}
	}
	return out
}
