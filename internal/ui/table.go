package ui

import (
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

var tableHeader = []string{"Language", "Vacancies found", "Vacancies processed", "Average salary"}

// NewReport builds a report from a language to summary mapping.
// Languages listed in order come first in that order, the rest follow alphabetically.
func NewReport(title, source string, summaries map[string]models.LanguageSummary, order []string) models.Report {
	report := models.Report{Title: title, Source: source}

	seen := make(map[string]bool, len(order))
	for _, lang := range order {
		if s, ok := summaries[lang]; ok && !seen[lang] {
			report.Summaries = append(report.Summaries, s)
			seen[lang] = true
		}
	}

	var rest []string
	for lang := range summaries {
		if !seen[lang] {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	for _, lang := range rest {
		report.Summaries = append(report.Summaries, summaries[lang])
	}
	return report
}

// RenderTable renders a report as a titled console table
func RenderTable(report models.Report) (string, error) {
	data := pterm.TableData{tableHeader}
	for _, s := range report.Summaries {
		data = append(data, []string{
			s.Language,
			humanize.Comma(int64(s.VacanciesFound)),
			humanize.Comma(int64(s.VacanciesProcessed)),
			ColorizeSalary(s),
		})
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithRightAlignment().
		WithData(data).
		Srender()
	if err != nil {
		return "", err
	}

	return pterm.DefaultBox.WithTitle(report.Title).Sprint(table), nil
}
