package solver

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

const separator = "[-----------------------------]"

// Theme styles the solver output.
type Theme struct {
	Separator lipgloss.Style
	Banner    lipgloss.Style
	Word      lipgloss.Style
	Unknown   lipgloss.Style
	Note      lipgloss.Style
}

// NewTheme returns the default theme. Colours are dropped when the renderer's output is not a terminal.
func NewTheme(renderer *lipgloss.Renderer) Theme {
	return Theme{
		Separator: renderer.NewStyle().Faint(true),
		Banner:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Word:      renderer.NewStyle().Foreground(lipgloss.Color("2")),
		Unknown:   renderer.NewStyle().Foreground(lipgloss.Color("3")),
		Note:      renderer.NewStyle().Italic(true),
	}
}

// quoted joins letters the way hints and fakes are shown: 'a, b'.
func quoted(letters []string) string {
	return "'" + strings.Join(letters, ", ") + "'"
}

func (t Theme) writeResult(b *strings.Builder, res Result, banner string) {
	for _, line := range res.Words {
		if !strings.ContainsRune(line.Word, Unknown) {
			fmt.Fprintf(b, "[%02d]: %s\n", line.Number, t.Word.Render(line.Word))

			continue
		}
		if line.SeeAlso > 0 {
			fmt.Fprintf(b, "[%02d]: %s (as per [^%02d])\n", line.Number, t.Unknown.Render(line.Word), line.SeeAlso)

			continue
		}
		fmt.Fprintf(b, "[%02d]: %s =>\n", line.Number, t.Unknown.Render(line.Word))
		for k := len(line.Suggestions) - 1; k >= 0; k-- {
			fmt.Fprintf(b, "    [%02d| %s ]\n", k+1, line.Suggestions[k])
		}
	}

	fmt.Fprintf(b, "\n=> [^]: '%s'\n", res.Board.Longest)
	if len(res.Hints) > 0 {
		fmt.Fprintf(b, "=> [h]: %s\n", quoted(res.Hints))
	}
	if len(res.Fakes) > 0 {
		fmt.Fprintf(b, "=> [x]: %s\n", quoted(res.Fakes))
	}

	b.WriteString("\n" + t.Separator.Render(separator) + "\n")
	b.WriteString(t.Banner.Render(banner) + "\n")
	b.WriteString(t.Separator.Render(separator) + "\n\n")
}

// Render writes results to w. Results are numbered from the last one up, so the first result printed
// carries the highest number.
func (t Theme) Render(w io.Writer, q Query, results []Result) error {
	b := &strings.Builder{}
	b.WriteString("\n" + t.Separator.Render(separator) + "\n\n")

	for i, res := range results {
		t.writeResult(b, res, fmt.Sprintf("[  ^^^ [RESULT %03d/%03d] ^^^   ]", len(results)-i, len(results)))
	}

	if q.Ignore != "" && !strings.Contains(q.Ignore, DefaultIgnore) {
		ignored := strings.Split(q.Ignore, "")
		b.WriteString(t.Note.Render(fmt.Sprintf("[--ignore]: this run ignored %s.", quoted(ignored))) + "\n")
	}

	_, err := io.WriteString(w, b.String())

	return errors.Wrap(err, "unable to write results")
}
