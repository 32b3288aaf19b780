package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// SuperJobResponse represents the response from the SuperJob vacancy search API
type SuperJobResponse struct {
	Objects []SuperJobVacancy `json:"objects"`
	Total   int               `json:"total"`
	More    bool              `json:"more"`
}

// SuperJobVacancy represents a vacancy from SuperJob.
// PaymentFrom and PaymentTo are zero when the bound is not published.
type SuperJobVacancy struct {
	ID          int    `json:"id"`
	Profession  string `json:"profession"`
	FirmName    string `json:"firm_name"`
	Link        string `json:"link"`
	PaymentFrom int    `json:"payment_from"`
	PaymentTo   int    `json:"payment_to"`
	Currency    string `json:"currency"`
	Candidat    string `json:"candidat"`
	Town        struct {
		Title string `json:"title"`
	} `json:"town"`
}

// SuperJobSource pages through the SuperJob vacancy search API
type SuperJobSource struct {
	cfg     config.SuperJobConfig
	prefix  string
	perPage int
}

// NewSuperJobSource creates the SuperJob adapter. The API key is required.
func NewSuperJobSource(cfg config.SuperJobConfig, prefix string, perPage int) (*SuperJobSource, error) {
	if cfg.SecretKey == "" {
		return nil, config.ErrMissingCredential
	}
	return &SuperJobSource{cfg: cfg, prefix: prefix, perPage: perPage}, nil
}

// Name returns the source identifier
func (s *SuperJobSource) Name() string { return models.SourceSuperJob }

// Title returns the name used in report titles
func (s *SuperJobSource) Title() string { return "SuperJob" }

// Currency returns the currency code estimated listings must use
func (s *SuperJobSource) Currency() string { return s.cfg.Currency }

// NewRequest builds the SuperJob search request for a zero-based page
func (s *SuperJobSource) NewRequest(ctx context.Context, language string, page int) (*http.Request, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid SuperJob base URL: %w", err)
	}

	query := u.Query()
	query.Set("keyword", searchPhrase(s.prefix, language))
	if s.cfg.Town != "" {
		query.Set("town", s.cfg.Town)
	}
	if s.cfg.Catalogue != "" {
		query.Set("catalogues", s.cfg.Catalogue)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("count", strconv.Itoa(s.perPage))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client.SetDefaultHeaders(req)
	req.Header.Set("X-Api-App-Id", s.cfg.SecretKey)
	return req, nil
}

// DecodePage parses a SuperJob search response into listings and pagination metadata
func (s *SuperJobSource) DecodePage(body []byte, page int) (*models.Page, error) {
	var resp SuperJobResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse SuperJob response: %w", err)
	}

	listings := make([]models.Listing, 0, len(resp.Objects))
	for _, v := range resp.Objects {
		listings = append(listings, models.Listing{
			ID:         strconv.Itoa(v.ID),
			Title:      v.Profession,
			Employer:   v.FirmName,
			Area:       v.Town.Title,
			URL:        v.Link,
			Currency:   v.Currency,
			SalaryFrom: nonZero(v.PaymentFrom),
			SalaryTo:   nonZero(v.PaymentTo),
			Snippet:    PlainText(v.Candidat),
			Source:     models.SourceSuperJob,
		})
	}

	var pages int
	if s.perPage > 0 {
		pages = (resp.Total + s.perPage - 1) / s.perPage
	}

	return &models.Page{
		Listings: listings,
		Found:    resp.Total,
		Pages:    pages,
		More:     resp.More,
	}, nil
}

// nonZero maps SuperJob's zero-as-absent convention onto a nil bound
func nonZero(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
