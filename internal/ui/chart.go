package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// RenderChart writes an HTML bar chart of average salaries, one series per report
func RenderChart(w io.Writer, reports []models.Report) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average salary by language", Subtitle: "RUB"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	var languages []string
	seen := make(map[string]bool)
	for _, r := range reports {
		for _, s := range r.Summaries {
			if !seen[s.Language] {
				seen[s.Language] = true
				languages = append(languages, s.Language)
			}
		}
	}
	bar.SetXAxis(languages)

	for _, r := range reports {
		bySource := make(map[string]models.LanguageSummary, len(r.Summaries))
		for _, s := range r.Summaries {
			bySource[s.Language] = s
		}

		items := make([]opts.BarData, 0, len(languages))
		for _, lang := range languages {
			s, ok := bySource[lang]
			if !ok || s.NoData {
				// "-" is rendered as a gap
				items = append(items, opts.BarData{Value: "-"})
				continue
			}
			items = append(items, opts.BarData{Value: s.AverageSalary})
		}
		bar.AddSeries(r.Title, items)
	}

	return bar.Render(w)
}

// WriteChart renders the chart into the file at path
func WriteChart(path string, reports []models.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := RenderChart(f, reports); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
