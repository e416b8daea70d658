package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bastiangx/hsnserve/internal/utils"
	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/lookup"
	"github.com/bastiangx/hsnserve/pkg/search"
	"github.com/charmbracelet/lipgloss"
)

// Renderer writes human-readable lookup results.
type Renderer struct {
	out   io.Writer
	code  lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
	match lipgloss.Style
}

// NewRenderer returns a Renderer writing to out. With color off every style
// renders its text unchanged.
func NewRenderer(out io.Writer, color bool) *Renderer {
	plain := lipgloss.NewStyle()
	r := &Renderer{out: out, code: plain, ok: plain, bad: plain, dim: plain, match: plain}
	if !color {
		return r
	}
	r.code = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	r.ok = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#31748f"})
	r.bad = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
	r.dim = lipgloss.NewStyle().Faint(true)
	r.match = lipgloss.NewStyle().Bold(true).Underline(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#d7827e", Dark: "#ebbcba"})
	return r
}

// Outcome prints a validation verdict with its match, parents or suggestions.
func (r *Renderer) Outcome(o lookup.Outcome) {
	mark := r.ok.Render("✓")
	if !o.IsValid() {
		mark = r.bad.Render("✗")
	}
	fmt.Fprintf(r.out, "%s %s  %s\n", mark, r.code.Render(o.Code()), o.Message())

	switch v := o.(type) {
	case lookup.Valid:
		fmt.Fprintf(r.out, "    %s\n", v.Match.Description)
		if len(v.Parents) > 0 {
			fmt.Fprintln(r.out, r.dim.Render("  parents:"))
			r.list(v.Parents, "")
		}
	case lookup.NotFound:
		if len(v.Suggestions) > 0 {
			fmt.Fprintln(r.out, r.dim.Render("  did you mean:"))
			r.list(v.Suggestions, "")
		}
	}
}

// Results prints search results with the query highlighted.
func (r *Renderer) Results(query string, results []codes.Record) {
	if len(results) == 0 {
		fmt.Fprintf(r.out, "%s no results for %q\n", r.bad.Render("✗"), query)
		return
	}
	fmt.Fprintf(r.out, "Found %d results for %q:\n", len(results), query)
	r.list(results, query)
}

// Stats prints a table summary.
func (r *Renderer) Stats(source string, stats codes.Stats) {
	fmt.Fprintf(r.out, "source:     %s\n", source)
	fmt.Fprintf(r.out, "records:    %s\n", utils.FormatWithCommas(stats.Records))
	fmt.Fprintf(r.out, "duplicates: %s\n", utils.FormatWithCommas(stats.Duplicates))

	lengths := make([]int, 0, len(stats.ByLength))
	for n := range stats.ByLength {
		lengths = append(lengths, n)
	}
	slices.Sort(lengths)
	for _, n := range lengths {
		fmt.Fprintf(r.out, "  %d-digit:  %s\n", n, utils.FormatWithCommas(stats.ByLength[n]))
	}
}

func (r *Renderer) list(recs []codes.Record, query string) {
	for i, rec := range recs {
		desc := rec.Description
		if query != "" {
			desc = r.highlight(desc, query)
		}
		fmt.Fprintf(r.out, "%2d. %-10s %s\n", i+1, r.code.Render(rec.Code), desc)
	}
}

// highlight marks the first occurrence of the whole query in desc, falling
// back to the first scoring token.
func (r *Renderer) highlight(desc, query string) string {
	candidates := []string{strings.TrimSpace(query)}
	for _, tok := range strings.Fields(query) {
		if len([]rune(tok)) >= search.MinTokenLen {
			candidates = append(candidates, tok)
		}
	}
	for _, c := range candidates {
		start, end := utils.IndexIgnoreCase(desc, c)
		if start < 0 {
			continue
		}
		return desc[:start] + r.match.Render(desc[start:end]) + desc[end:]
	}
	return desc
}
