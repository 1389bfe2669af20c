package assessment

import (
	"fmt"
	"regexp"
	"strings"
)

// wikiControlLine matches a line that the wiki parser would interpret
// as a heading or list item.
var wikiControlLine = regexp.MustCompile(`^(h[1-6]\.|[*#-]+\s)`)

// FormatDescription renders the request as JIRA wiki markup. The
// output is deterministic: identical requests produce byte-identical
// markup. Section order is fixed: Reference (when present), Background,
// Current State, Tasks, Out of Scope (when present), Estimated Effort.
func FormatDescription(r *Request) string {
	var parts []string

	if r.ReferenceURL != "" {
		parts = append(parts, "h2. Reference")
		parts = append(parts, "Source: "+escapeInline(r.ReferenceURL))
		parts = append(parts, "")
	}

	parts = append(parts, "h2. Background")
	parts = append(parts, escapeText(r.Background))
	parts = append(parts, "")

	parts = append(parts, "h2. Current State")
	for _, item := range r.CurrentState.Implemented {
		parts = append(parts, "* (/) "+escapeInline(item))
	}
	for _, item := range r.CurrentState.Missing {
		parts = append(parts, "* (x) "+escapeInline(item))
	}
	parts = append(parts, "")

	parts = append(parts, "h2. Tasks")
	parts = append(parts, "")
	for i, group := range r.Tasks {
		parts = append(parts, fmt.Sprintf("h3. %d. %s", i+1, escapeInline(group.Title)))
		for _, item := range group.Items {
			parts = append(parts, "* "+escapeInline(item))
		}
		parts = append(parts, "")
	}

	if len(r.OutOfScope) > 0 {
		parts = append(parts, "h2. Out of Scope")
		for _, item := range r.OutOfScope {
			parts = append(parts, "* "+escapeInline(item))
		}
		parts = append(parts, "")
	}

	parts = append(parts, "h2. Estimated Effort")
	parts = append(parts, fmt.Sprintf("%d days", r.EffortDays))

	return strings.Join(parts, "\n")
}

// escapeText neutralizes wiki control sequences in multi-line user
// text. A line that starts with a heading or list marker gets a
// leading backslash so the parser treats it as literal text.
func escapeText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if wikiControlLine.MatchString(line) {
			lines[i] = `\` + line
		}
	}
	return strings.Join(lines, "\n")
}

// escapeInline neutralizes user text placed inside a generated list
// item or heading. Newlines would break the enclosing construct, so
// they collapse to spaces before escaping.
func escapeInline(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if wikiControlLine.MatchString(s) {
		return `\` + s
	}
	return s
}
