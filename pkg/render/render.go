// Package render prints analysed paradigms for terminals: word forms with
// their stem, prefix, infix and suffix material coloured apart, the cost
// matrix and the candidate tables of each extraction method.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/analysis"
	"github.com/bastiangx/stemserve/pkg/cost"
	"github.com/bastiangx/stemserve/pkg/extract"
	"github.com/bastiangx/stemserve/pkg/multiset"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
)

var (
	stemColor   = lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}
	prefixColor = lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}
	suffixColor = lipgloss.AdaptiveColor{Light: "#286983", Dark: "#31748f"}
	infixColor  = lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#9ccfd8"}
	affixColor  = lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}
)

// Renderer styles reports for one output.
type Renderer struct {
	lg     *lipgloss.Renderer
	roles  map[Role]lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	border lipgloss.Style
}

// New creates a Renderer that detects the colour profile of w.
func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		lg: lg,
		roles: map[Role]lipgloss.Style{
			Stem:   lg.NewStyle().Bold(true).Underline(true).Foreground(stemColor),
			Prefix: lg.NewStyle().Foreground(prefixColor),
			Suffix: lg.NewStyle().Foreground(suffixColor),
			Infix:  lg.NewStyle().Foreground(infixColor),
			Affix:  lg.NewStyle().Foreground(affixColor),
		},
		title:  lg.NewStyle().Bold(true).Foreground(stemColor),
		label:  lg.NewStyle().Italic(true).Foreground(mutedColor),
		border: lg.NewStyle().Foreground(mutedColor),
	}
}

// Segments renders marked segments back into one styled word.
func (r *Renderer) Segments(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(r.roles[s.Role].Render(s.Text))
	}
	return b.String()
}

// Word renders word with the characters at placement marked as stem.
func (r *Renderer) Word(word string, placement []int) string {
	if word == "" {
		return r.label.Render(NullSymbol)
	}
	return r.Segments(Mark(word, placement))
}

// Report renders everything known about one analysed row.
func (r *Renderer) Report(res analysis.Result) string {
	p := res.Paradigm
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", r.title.Render(Null(p.Leaf())), r.label.Render(fmt.Sprintf("(row %d)", res.Row+1)))
	r.field(&b, "forms", strings.Join(nullAll(p.Forms()), " "))
	r.field(&b, "shortest", Null(p.ShortestForm()))
	// the stem is a multiset; show it in the order the shortest form spells it
	r.field(&b, "stem", Null(multiset.Reorder(p.Stem(), p.ShortestForm())))
	r.field(&b, "stem letters", Null(p.Stem()))
	r.field(&b, "targets", strings.Join(nullAll(p.Targets()), " "))
	r.field(&b, "affixes", strings.Join(nullAll(p.Affixes()), " "))
	r.field(&b, "union affix", Null(p.UnionAffix()))
	b.WriteString(r.costTable(res))
	b.WriteByte('\n')
	r.field(&b, "grammar cost", utils.FormatWithCommas(p.GrammarCost()))
	r.field(&b, "data cost", utils.FormatWithCommas(p.DataCost()))
	r.field(&b, "total cost", utils.FormatWithCommas(p.TotalCost()))

	for _, m := range extract.Methods {
		b.WriteByte('\n')
		b.WriteString(r.title.Render(m.String()))
		b.WriteByte('\n')
		b.WriteString(r.candidateTable(res, m))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary renders the totals of a batch.
func (r *Renderer) Summary(s analysis.Summary) string {
	var b strings.Builder
	b.WriteString(r.title.Render("summary"))
	b.WriteByte('\n')
	r.field(&b, "paradigms", utils.FormatWithCommas(s.Paradigms))
	r.field(&b, "suppletive", utils.FormatWithCommas(s.Suppletive))
	r.field(&b, "columns", strconv.Itoa(s.Columns))
	r.field(&b, "column affixes", strings.Join(nullAll(s.ColumnAffixes), " "))
	r.field(&b, "grammar cost", utils.FormatWithCommas(s.GrammarCost))
	r.field(&b, "data cost", utils.FormatWithCommas(s.DataCost))
	r.field(&b, "total cost", utils.FormatWithCommas(s.TotalCost))
	return b.String()
}

func (r *Renderer) field(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "  %s %s\n", r.label.Render(fmt.Sprintf("%-14s", name)), value)
}

// costTable is the 5xN matrix of weighted counts with a sum row.
func (r *Renderer) costTable(res analysis.Result) string {
	p := res.Paradigm
	vectors := p.CostVectors()

	headers := []string{""}
	for _, form := range p.Forms() {
		headers = append(headers, Null(form))
	}
	headers = append(headers, "Σ")

	t := r.newTable().Headers(headers...)
	var total cost.Vector
	for _, v := range vectors {
		total = total.Add(v)
	}
	for c := range cost.NumComponents {
		row := []string{cost.ComponentNames[c]}
		for _, v := range vectors {
			row = append(row, strconv.Itoa(v[c]))
		}
		row = append(row, strconv.Itoa(total[c]))
		t.Row(row...)
	}
	sums := []string{"sum"}
	for i := range vectors {
		sums = append(sums, strconv.Itoa(p.ColumnCost(i)))
	}
	sums = append(sums, strconv.Itoa(p.DataCost()))
	t.Row(sums...)
	return t.String()
}

// candidateTable lists the candidates of method m, each priced as a full
// decomposition and shown on its first placement in every form.
func (r *Renderer) candidateTable(res analysis.Result, m extract.Method) string {
	candidates := res.ByMethod(m)
	if candidates == nil || candidates.Len() == 0 {
		return r.label.Render("  no candidates")
	}

	scored, err := res.Rank(m)
	if err != nil {
		log.Errorf("Failed to score %s candidates of %q: %v", m, res.Paradigm.Leaf(), err)
		return r.label.Render("  scoring failed")
	}
	cheapest := make(map[string]bool)
	for _, s := range extract.Cheapest(scored) {
		cheapest[s.Stem] = true
	}

	forms := res.Paradigm.Forms()
	headers := []string{"stem", "grammar", "data", "total"}
	headers = append(headers, nullAll(forms)...)
	t := r.newTable().Headers(headers...)

	for i, c := range candidates.Entries() {
		stem := Null(c.Stem)
		if cheapest[c.Stem] {
			stem += " *"
		}
		row := []string{
			stem,
			strconv.Itoa(scored[i].GrammarCost),
			strconv.Itoa(scored[i].DataCost),
			strconv.Itoa(scored[i].TotalCost),
		}
		for col, form := range forms {
			row = append(row, r.Word(form, firstPlacement(c, col)))
		}
		t.Row(row...)
	}
	return t.String()
}

// firstPlacement picks the placement shown for column col. The empty
// stem marks the whole form as affix.
func firstPlacement(c extract.Candidate, col int) []int {
	if c.Stem == "" || col >= len(c.Placements) || len(c.Placements[col]) == 0 {
		return nil
	}
	return c.Placements[col][0]
}

func (r *Renderer) newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			return r.lg.NewStyle().Padding(0, 1)
		})
}

func nullAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Null(w)
	}
	return out
}
