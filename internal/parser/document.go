// Package parser locates tags in markdown documents: YAML frontmatter
// tag fields and inline #tags in body text. Parsing is lossless — a
// document reserialized without edits is byte-identical to its input.
package parser

// Document is the in-memory representation of one file, split into an
// optional metadata block and a body with exact byte provenance.
type Document struct {
	// Path identifies the file, relative to the vault root.
	Path string

	// Raw is the original content, untouched.
	Raw []byte

	// Frontmatter is the parsed metadata block, nil when the file has
	// none (all tags are then inline).
	Frontmatter *Frontmatter

	// Body is the text after the metadata block (the whole file when
	// Frontmatter is nil).
	Body string
}

// ParseDocument parses file content. It never fails: malformed YAML in
// the metadata block degrades to an empty tag set (Frontmatter.Degraded)
// so the body can still be edited.
func ParseDocument(path string, content []byte) *Document {
	fm, body := parseFrontmatter(string(content))
	return &Document{
		Path:        path,
		Raw:         content,
		Frontmatter: fm,
		Body:        body,
	}
}

// Content reserializes the document. With no edits applied the result
// is byte-identical to Raw.
func (d *Document) Content() []byte {
	if d.Frontmatter == nil {
		return []byte(d.Body)
	}
	return []byte(d.Frontmatter.Serialize(d.Body))
}

// MetadataTags returns the raw tag values from the metadata block, in
// authored order.
func (d *Document) MetadataTags() []string {
	return d.Frontmatter.TagValues()
}

// InlineTags returns the inline tag occurrences in the body.
func (d *Document) InlineTags() []InlineTag {
	return ExtractInlineTags(d.Body)
}

// Degraded reports whether the metadata block failed to parse as YAML.
func (d *Document) Degraded() bool {
	return d.Frontmatter != nil && d.Frontmatter.Degraded
}

// LineBreak returns the document's dominant line terminator, used when
// synthesizing a new metadata block.
func (d *Document) LineBreak() string {
	if d.Frontmatter != nil {
		return d.Frontmatter.lineBreak
	}
	for i := 0; i < len(d.Raw); i++ {
		if d.Raw[i] == '\n' {
			if i > 0 && d.Raw[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}
