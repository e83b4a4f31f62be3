package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
)

// table writes left-aligned columns sized by display width. Only the last
// column may carry color escapes.
func table(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			if i == len(cells)-1 {
				parts[i] = c
				continue
			}
			parts[i] = runewidth.FillRight(c, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	line(header)
	for _, r := range rows {
		line(r)
	}
}

func renderReport(w io.Writer, p *palette, r *service.Report) {
	a := r.Assessment
	title := a.Name
	if title == "" {
		title = a.AthleteID
	}
	p.head.Fprintf(w, "%s · %s %s · %s\n\n", title, a.Gender, a.AgeGroup, a.Sport)

	rows := make([][]string, 0, len(r.Tests))
	for _, t := range r.Tests {
		rows = append(rows, []string{t.Label, t.Display, t.Percentile, p.tier(t.Score).Sprint(strings.ToUpper(t.Category))})
	}
	table(w, []string{"TEST", "RESULT", "PERCENTILE", "TIER"}, rows)

	fmt.Fprintln(w)
	rows = rows[:0]
	for _, m := range r.Comparison {
		rows = append(rows, []string{m.Label, m.AthleteText, m.StandardText, m.DiffText})
	}
	table(w, []string{"TEST", "ATHLETE", "STANDARD", "DIFF"}, rows)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Level: %s (%s, average %.2f)\n", p.head.Sprint(r.Summary.Level), r.Summary.GreensText, r.Summary.Average)
	fmt.Fprintf(w, "Strengths: %s\n", strings.Join(r.Strengths, ", "))

	rec := r.Recommendation
	fmt.Fprintf(w, "\nPrimary focus: %s\n", p.red.Sprint(rec.Primary.Name))
	for _, tip := range rec.Primary.Tips {
		fmt.Fprintf(w, "  - %s\n", tip)
	}
	fmt.Fprintf(w, "Secondary focus: %s\n", p.amber.Sprint(rec.Secondary.Name))
	for _, tip := range rec.Secondary.Tips {
		fmt.Fprintf(w, "  - %s\n", tip)
	}
}

func renderSquad(w io.Writer, p *palette, squad []model.SquadEntry) {
	rows := make([][]string, 0, len(squad))
	for _, e := range squad {
		tiers := make([]string, len(e.Scores))
		for i, s := range e.Scores {
			tiers[i] = p.tier(s).Sprint(s.String()[:1])
		}
		rows = append(rows, []string{
			fmt.Sprint(e.Rank), e.Name, e.Sport, fmt.Sprint(e.Total), fmt.Sprint(e.Greens), strings.Join(tiers, " "),
		})
	}
	table(w, []string{"RANK", "NAME", "SPORT", "TOTAL", "GREENS", "TIERS"}, rows)
}
