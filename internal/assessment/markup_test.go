package assessment

import (
	"strings"
	"testing"
)

func TestFormatDescription(t *testing.T) {
	t.Run("SectionOrder", func(t *testing.T) {
		req := validRequest()
		req.ReferenceURL = "https://assessment.example.com/cm/42"
		req.OutOfScope = []string{"Backup retention"}

		out := FormatDescription(req)

		sections := []string{
			"h2. Reference",
			"h2. Background",
			"h2. Current State",
			"h2. Tasks",
			"h2. Out of Scope",
			"h2. Estimated Effort",
		}
		last := -1
		for _, s := range sections {
			idx := strings.Index(out, s)
			if idx < 0 {
				t.Fatalf("section %q missing from output:\n%s", s, out)
			}
			if idx < last {
				t.Errorf("section %q out of order", s)
			}
			last = idx
		}
	})

	t.Run("OptionalSectionsOmitted", func(t *testing.T) {
		out := FormatDescription(validRequest())
		if strings.Contains(out, "h2. Reference") {
			t.Error("Reference section rendered without reference_url")
		}
		if strings.Contains(out, "h2. Out of Scope") {
			t.Error("Out of Scope section rendered without items")
		}
	})

	t.Run("CurrentStateMarkers", func(t *testing.T) {
		out := FormatDescription(validRequest())
		if !strings.Contains(out, "* (/) Artifacts are stored with timestamps") {
			t.Error("implemented item not marked done")
		}
		if !strings.Contains(out, "* (x) No retention configuration exists") {
			t.Error("missing item not marked open")
		}
	})

	t.Run("TaskGroupsNumbered", func(t *testing.T) {
		req := validRequest()
		req.Tasks = append(req.Tasks, TaskGroup{Title: "Enforce cleanup", Items: []string{"Add cron job"}})

		out := FormatDescription(req)
		if !strings.Contains(out, "h3. 1. Add retention configuration") {
			t.Errorf("first task group heading wrong:\n%s", out)
		}
		if !strings.Contains(out, "h3. 2. Enforce cleanup") {
			t.Errorf("second task group heading wrong:\n%s", out)
		}
	})

	t.Run("EffortLine", func(t *testing.T) {
		req := validRequest()
		req.EffortDays = 10
		if !strings.Contains(FormatDescription(req), "\n10 days") {
			t.Error("effort line missing")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		req := validRequest()
		req.ReferenceURL = "https://assessment.example.com/cm/42"
		req.OutOfScope = []string{"A", "B"}

		first := FormatDescription(req)
		for i := 0; i < 5; i++ {
			if got := FormatDescription(req); got != first {
				t.Fatal("output differs between identical renders")
			}
		}
	})
}

func TestEscaping(t *testing.T) {
	t.Run("HeadingInBackground", func(t *testing.T) {
		req := validRequest()
		req.Background = "Context line.\nh2. Injected heading\nMore context."

		out := FormatDescription(req)
		for _, line := range strings.Split(out, "\n") {
			if line == "h2. Injected heading" {
				t.Fatal("user-supplied heading survived unescaped")
			}
		}
		if !strings.Contains(out, `\h2. Injected heading`) {
			t.Errorf("escaped heading missing:\n%s", out)
		}
	})

	t.Run("ListMarkerInBackground", func(t *testing.T) {
		req := validRequest()
		req.Background = "* not a bullet\n# not a numbered item\n- not a dash item"

		out := FormatDescription(req)
		for _, want := range []string{`\* not a bullet`, `\# not a numbered item`, `\- not a dash item`} {
			if !strings.Contains(out, want) {
				t.Errorf("expected escaped line %q in:\n%s", want, out)
			}
		}
	})

	t.Run("NewlineInReferenceURL", func(t *testing.T) {
		req := validRequest()
		req.ReferenceURL = "https://x.example/cm/1\nh2. Injected heading\n* injected bullet"

		out := FormatDescription(req)
		for _, line := range strings.Split(out, "\n") {
			if line == "h2. Injected heading" || line == "* injected bullet" {
				t.Fatalf("user-supplied control line survived unescaped: %q", line)
			}
		}
		if !strings.Contains(out, "Source: https://x.example/cm/1 h2. Injected heading * injected bullet") {
			t.Errorf("reference line not collapsed to one line:\n%s", out)
		}
	})

	t.Run("NewlineInListItem", func(t *testing.T) {
		req := validRequest()
		req.CurrentState.Missing = []string{"first half\nh2. second half"}

		out := FormatDescription(req)
		if strings.Contains(out, "\nh2. second half") {
			t.Error("newline in list item produced a heading line")
		}
		if !strings.Contains(out, "* (x) first half h2. second half") {
			t.Errorf("list item not collapsed to one line:\n%s", out)
		}
	})

	t.Run("TaskTitleMarker", func(t *testing.T) {
		req := validRequest()
		req.Tasks[0].Items = []string{"* nested marker"}

		out := FormatDescription(req)
		if !strings.Contains(out, `* \* nested marker`) {
			t.Errorf("list marker inside item not escaped:\n%s", out)
		}
	})

	t.Run("NoUserControlLinesSurvive", func(t *testing.T) {
		req := validRequest()
		req.Background = "h3. sneaky\n* sneaky\n# sneaky"
		req.OutOfScope = []string{"h2. also sneaky"}

		out := FormatDescription(req)
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "sneaky") && wikiControlLine.MatchString(line) {
				// Generated bullets wrap escaped text; a surviving
				// bare control line is the failure mode.
				if !strings.Contains(line, `\`) {
					t.Errorf("unescaped control line: %q", line)
				}
			}
		}
	})
}
