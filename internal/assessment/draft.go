package assessment

import (
	"fmt"
	"os"
	"strings"
)

// WriteDraft saves the rendered ticket to a local file. Used as a
// fallback when the tracker is unreachable or unconfigured, so the
// assessment output is not lost.
func WriteDraft(path string, r *Request) error {
	var b strings.Builder
	b.WriteString("JIRA Ticket Draft\n")
	b.WriteString("=================\n\n")
	fmt.Fprintf(&b, "Summary: %s\n", r.Summary)
	if r.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", r.Priority)
	}
	if r.Epic != "" {
		fmt.Fprintf(&b, "Epic: %s\n", r.Epic)
	}
	if r.Component != "" {
		fmt.Fprintf(&b, "Component: %s\n", r.Component)
	}
	b.WriteString("\nDescription:\n")
	b.WriteString(FormatDescription(r))
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write draft %s: %w", path, err)
	}
	return nil
}
