package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// hhMaxDepth is the number of results HH lets a single search page through
const hhMaxDepth = 2000

// HHResponse represents the response from the HH vacancy search API
type HHResponse struct {
	Items   []HHVacancy `json:"items"`
	Found   int         `json:"found"`
	Pages   int         `json:"pages"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// HHVacancy represents a vacancy from HH. Salary is null when the employer did not publish one.
type HHVacancy struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	AlternateURL string    `json:"alternate_url"`
	Salary       *HHSalary `json:"salary"`
	Employer     struct {
		Name string `json:"name"`
	} `json:"employer"`
	Area struct {
		Name string `json:"name"`
	} `json:"area"`
	Snippet struct {
		Requirement    string `json:"requirement"`
		Responsibility string `json:"responsibility"`
	} `json:"snippet"`
}

// HHSalary holds the salary fork. A null bound is absent, zero is a real value.
type HHSalary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
}

// HHSource pages through the HH vacancy search API
type HHSource struct {
	cfg     config.HHConfig
	prefix  string
	perPage int
}

// NewHHSource creates the HH adapter
func NewHHSource(cfg config.HHConfig, prefix string, perPage int) *HHSource {
	return &HHSource{cfg: cfg, prefix: prefix, perPage: perPage}
}

// Name returns the source identifier
func (s *HHSource) Name() string { return models.SourceHH }

// Title returns the name used in report titles
func (s *HHSource) Title() string { return "HeadHunter" }

// Currency returns the currency code estimated listings must use
func (s *HHSource) Currency() string { return s.cfg.Currency }

// NewRequest builds the HH search request for a zero-based page
func (s *HHSource) NewRequest(ctx context.Context, language string, page int) (*http.Request, error) {
	u, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid HH base URL: %w", err)
	}

	query := u.Query()
	query.Set("text", searchPhrase(s.prefix, language))
	if s.cfg.Area != "" {
		query.Set("area", s.cfg.Area)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(s.perPage))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client.SetDefaultHeaders(req)
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}
	return req, nil
}

// DecodePage parses a HH search response into listings and pagination metadata
func (s *HHSource) DecodePage(body []byte, page int) (*models.Page, error) {
	var resp HHResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse HH response: %w", err)
	}

	listings := make([]models.Listing, 0, len(resp.Items))
	for _, v := range resp.Items {
		listings = append(listings, s.toListing(v))
	}

	pages := resp.Pages
	if s.perPage > 0 && pages*s.perPage > hhMaxDepth {
		pages = hhMaxDepth / s.perPage
	}

	return &models.Page{
		Listings: listings,
		Found:    resp.Found,
		Pages:    pages,
		More:     page+1 < pages,
	}, nil
}

func (s *HHSource) toListing(v HHVacancy) models.Listing {
	l := models.Listing{
		ID:       v.ID,
		Title:    v.Name,
		Employer: v.Employer.Name,
		Area:     v.Area.Name,
		URL:      v.AlternateURL,
		Snippet:  PlainText(strings.TrimSpace(v.Snippet.Requirement + " " + v.Snippet.Responsibility)),
		Source:   models.SourceHH,
	}
	if v.Salary != nil {
		l.Currency = v.Salary.Currency
		l.SalaryFrom = v.Salary.From
		l.SalaryTo = v.Salary.To
	}
	return l
}
