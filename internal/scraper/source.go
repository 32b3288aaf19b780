package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// Source is a remote job-listing API the Aggregator can page through
type Source interface {
	// Name returns the short source identifier
	Name() string
	// Title returns the human readable source name used in reports
	Title() string
	// Currency returns the currency code listings must be paid in to be estimated
	Currency() string
	// NewRequest builds the request for one zero-based result page
	NewRequest(ctx context.Context, language string, page int) (*http.Request, error)
	// DecodePage parses a response body into listings and pagination metadata
	DecodePage(body []byte, page int) (*models.Page, error)
}

// NewSource selects the adapter for the named source
func NewSource(name string, cfg *config.Config) (Source, error) {
	switch strings.ToLower(name) {
	case models.SourceHH:
		return NewHHSource(cfg.HH, cfg.SearchPrefix, cfg.PerPage), nil
	case models.SourceSuperJob:
		src, err := NewSuperJobSource(cfg.SuperJob, cfg.SearchPrefix, cfg.PerPage)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source %q (use %q or %q)", name, models.SourceHH, models.SourceSuperJob)
	}
}

func searchPhrase(prefix, language string) string {
	return strings.TrimSpace(prefix + " " + language)
}
