package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

const defaultMaxPages = 50

// AggregatorOptions tunes the pagination loop
type AggregatorOptions struct {
	// MaxPages bounds the number of page requests per language and source
	MaxPages int
	// Progress shows a progress bar on ProgressOut while paging
	Progress    bool
	ProgressOut io.Writer
}

// Aggregator pages through a Source and folds the listings into a LanguageSummary
type Aggregator struct {
	httpClient *http.Client
	logger     *pterm.Logger
	opts       AggregatorOptions
}

// NewAggregator creates an Aggregator sharing one HTTP client across sources
func NewAggregator(httpClient *http.Client, logger *pterm.Logger, opts AggregatorOptions) *Aggregator {
	if logger == nil {
		logger = pterm.DefaultLogger.WithWriter(io.Discard)
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.ProgressOut == nil {
		opts.ProgressOut = os.Stderr
	}
	return &Aggregator{httpClient: httpClient, logger: logger, opts: opts}
}

// Collect retrieves every page the source offers for the language and returns
// the summary together with all retrieved listings. Any request failure aborts
// the whole collection.
func (a *Aggregator) Collect(ctx context.Context, src Source, language string) (*models.LanguageSummary, []models.Listing, error) {
	var (
		listings []models.Listing
		found    int
		bar      *pb.ProgressBar
	)

	if a.opts.Progress {
		bar = pb.New(0)
		bar.SetWriter(a.opts.ProgressOut)
		bar.Set("prefix", fmt.Sprintf("%s %s ", src.Title(), utils.TruncateString(language, 16)))
		bar.Start()
		defer bar.Finish()
	}

	for page := 0; ; page++ {
		a.logger.Debug("Requesting page", a.logger.Args("source", src.Name(), "language", language, "page", page))

		req, err := src.NewRequest(ctx, language, page)
		if err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", src.Name(), language, err)
		}

		body, err := client.Do(a.httpClient, req)
		if err != nil {
			return nil, nil, fmt.Errorf("%s %s page %d: %w", src.Name(), language, page, err)
		}

		p, err := src.DecodePage(body, page)
		if err != nil {
			return nil, nil, fmt.Errorf("%s %s page %d: %w", src.Name(), language, page, err)
		}

		listings = append(listings, p.Listings...)
		found = p.Found

		if bar != nil {
			if page == 0 && p.Pages > 0 {
				bar.SetTotal(int64(min(p.Pages, a.opts.MaxPages)))
			}
			bar.Increment()
		}

		if !p.More {
			break
		}
		if page+1 >= a.opts.MaxPages {
			a.logger.Warn("Page limit reached, remaining pages skipped",
				a.logger.Args("source", src.Name(), "language", language, "max_pages", a.opts.MaxPages))
			break
		}
	}

	summary, err := Summarize(src.Name(), language, found, listings, src.Currency())
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("Collected vacancies", a.logger.Args(
		"source", src.Name(),
		"language", language,
		"retrieved", len(listings),
		"found", summary.VacanciesFound,
		"processed", summary.VacanciesProcessed,
	))
	return summary, listings, nil
}

// Summarize folds listings through the salary estimator. When no listing can be
// estimated the summary is flagged NoData instead of averaging an empty set.
func Summarize(source, language string, found int, listings []models.Listing, currency string) (*models.LanguageSummary, error) {
	estimates := make([]float64, 0, len(listings))
	for _, l := range listings {
		if e, ok := salary.Estimate(l, currency); ok {
			estimates = append(estimates, e)
		}
	}

	summary := &models.LanguageSummary{
		Language:           language,
		Source:             source,
		VacanciesFound:     found,
		VacanciesProcessed: len(estimates),
	}

	avg, err := salary.Average(estimates)
	switch {
	case errors.Is(err, salary.ErrInsufficientData):
		summary.NoData = true
	case err != nil:
		return nil, fmt.Errorf("%s %s: %w", source, language, err)
	default:
		summary.AverageSalary = avg
	}
	return summary, nil
}
