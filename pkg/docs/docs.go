// Package docs generates a reference document for the filters and tests
// currently registered, the way it would appear in the project README.
package docs

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/j2go/pkg/registry"
	"github.com/arthur-debert/j2go/pkg/render/filters"
)

// FilterReference builds a markdown reference by introspecting the filter
// and test registries.
func FilterReference(filterReg registry.Registry[filters.Filter], testReg registry.Registry[filters.Test]) string {
	var b strings.Builder

	b.WriteString("# Template filters\n\n")
	if filterReg.Count() == 0 {
		b.WriteString("No filters registered.\n\n")
	}
	for _, name := range filterReg.List() {
		f, _ := filterReg.Lookup(name)
		writeEntry(&b, f.Name, f.Summary, f.Doc)
	}

	if testReg.Count() > 0 {
		b.WriteString("# Template tests\n\n")
		for _, name := range testReg.List() {
			t, _ := testReg.Lookup(name)
			writeEntry(&b, t.Name, t.Summary, t.Doc)
		}
	}

	return b.String()
}

func writeEntry(b *strings.Builder, name, summary, doc string) {
	fmt.Fprintf(b, "## %s\n\n", name)
	if summary != "" {
		fmt.Fprintf(b, "%s\n\n", summary)
	}
	if doc != "" {
		// Entry docs carry their own top-level heading; demote it under
		// the entry heading.
		doc = strings.TrimPrefix(doc, "# "+name+"\n")
		fmt.Fprintf(b, "%s\n\n", strings.TrimSpace(doc))
	}
}

// RenderForTerminal renders markdown for the given output file. Rich
// glamour output is used only when the output is a color-capable
// terminal; pipes and NO_COLOR environments get the plain markdown.
func RenderForTerminal(markdown string, out *os.File) string {
	if !shouldStyle(out) {
		return markdown
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

func shouldStyle(out *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
