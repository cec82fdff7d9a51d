// Package docblock parses PHPDoc comments ("/** ... */") into their tagged
// annotations. Only a flat view is needed: each annotation is a tag name
// plus the raw text that follows it, with no type grammar beyond the
// void-only predicate.
package docblock

import "strings"

// Annotation is one "@tag ..." entry of a doc comment.
type Annotation struct {
	Tag     string // tag name without the leading "@"
	Content string // raw text from "@tag" to the end of the annotation

	// Line span within the docblock, for removal. Continuation lines
	// (lines until the next "@" or the closing "*/") belong to the span.
	startLine int
	endLine   int
}

// DocBlock is a parsed doc comment. It keeps the original lines so that
// it can be re-rendered after an annotation is removed.
type DocBlock struct {
	lines       []string
	annotations []Annotation
}

// Parse splits the raw comment text into lines and extracts annotations.
// Malformed input never fails: text that does not look like annotations
// simply yields none, which downstream classifies as "absent".
func Parse(raw string) *DocBlock {
	d := &DocBlock{lines: strings.Split(raw, "\n")}

	cur := -1 // index into d.annotations of the annotation being extended
	for li, line := range d.lines {
		content := stripDecoration(line)
		if tag, ok := annotationTag(content); ok {
			d.annotations = append(d.annotations, Annotation{
				Tag:       tag,
				Content:   content,
				startLine: li,
				endLine:   li,
			})
			cur = len(d.annotations) - 1
			continue
		}
		if cur >= 0 && content != "" && !strings.Contains(line, "*/") {
			// continuation line of the current annotation
			a := &d.annotations[cur]
			a.Content += "\n" + content
			a.endLine = li
			continue
		}
		cur = -1
	}
	return d
}

// Annotations returns all annotations in source order.
func (d *DocBlock) Annotations() []Annotation { return d.annotations }

// AnnotationsOf returns the annotations with the given tag, in order.
func (d *DocBlock) AnnotationsOf(tag string) []Annotation {
	var out []Annotation
	for _, a := range d.annotations {
		if a.Tag == tag {
			out = append(out, a)
		}
	}
	return out
}

// Removable reports whether the annotation's lines can be deleted without
// breaking the comment: either the docblock is a single line, or none of
// the annotation's lines carries the comment's opening or closing marker.
// Unusual layouts (an annotation sharing its line with "*/") are left
// alone rather than risk emitting an unterminated comment.
func (d *DocBlock) Removable(a Annotation) bool {
	if a.startLine == 0 && a.endLine == len(d.lines)-1 {
		return true
	}
	for li := a.startLine; li <= a.endLine; li++ {
		if strings.Contains(d.lines[li], "/**") || strings.Contains(d.lines[li], "*/") {
			return false
		}
	}
	return true
}

// Remove deletes the annotation's lines from the docblock. A single-line
// docblock ("/** @return void */") collapses to an empty body, for which
// Empty reports true afterwards.
func (d *DocBlock) Remove(a Annotation) {
	if a.startLine == 0 && a.endLine == len(d.lines)-1 {
		// Whole comment is one line: empty it rather than slicing lines away.
		d.lines = []string{"/** */"}
		d.annotations = nil
		return
	}

	kept := make([]string, 0, len(d.lines))
	for li, line := range d.lines {
		if li >= a.startLine && li <= a.endLine {
			continue
		}
		kept = append(kept, line)
	}
	d.lines = kept

	var remaining []Annotation
	for _, other := range d.annotations {
		if other.startLine == a.startLine && other.endLine == a.endLine && other.Content == a.Content {
			continue
		}
		removed := a.endLine - a.startLine + 1
		if other.startLine > a.endLine {
			other.startLine -= removed
			other.endLine -= removed
		}
		remaining = append(remaining, other)
	}
	d.annotations = remaining
}

// Empty reports whether the docblock carries no annotations and no prose.
func (d *DocBlock) Empty() bool {
	if len(d.annotations) > 0 {
		return false
	}
	for _, line := range d.lines {
		if stripDecoration(line) != "" {
			return false
		}
	}
	return true
}

// Render reassembles the docblock text.
func (d *DocBlock) Render() string {
	return strings.Join(d.lines, "\n")
}

// stripDecoration removes the comment scaffolding from one line: the
// opening "/**", a leading "*", the closing "*/" and surrounding space.
func stripDecoration(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "*")
	return strings.TrimSpace(s)
}

// annotationTag reports whether content starts an annotation and returns
// its tag name. A tag is "@" followed by at least one letter or hyphen.
func annotationTag(content string) (string, bool) {
	if !strings.HasPrefix(content, "@") {
		return "", false
	}
	rest := content[1:]
	end := 0
	for end < len(rest) {
		c := rest[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return "", false
	}
	return rest[:end], true
}
