package models

// Source identifiers shared by the config, the adapters and the CLI
const (
	SourceHH       = "hh"
	SourceSuperJob = "superjob"
)

// Listing represents a single job posting normalized by its source adapter.
// SalaryFrom and SalaryTo are nil when the source reported the bound as absent.
type Listing struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Employer   string `json:"employer"`
	Area       string `json:"area"`
	URL        string `json:"url"`
	Currency   string `json:"currency"`
	SalaryFrom *int   `json:"salary_from,omitempty"`
	SalaryTo   *int   `json:"salary_to,omitempty"`
	Snippet    string `json:"snippet,omitempty"`
	Source     string `json:"source"`
}

// Page is one decoded response page from a source
type Page struct {
	Listings []Listing
	// Found is the total number of vacancies the source reports for the query
	Found int
	// Pages is the expected number of pages, zero when the source does not say
	Pages int
	// More reports whether another page should be requested
	More bool
}

// LanguageSummary holds the aggregate statistics for one language and one source
type LanguageSummary struct {
	Language           string `json:"language"`
	Source             string `json:"source"`
	VacanciesFound     int    `json:"vacancies_found"`
	VacanciesProcessed int    `json:"vacancies_processed"`
	AverageSalary      int    `json:"average_salary"`
	// NoData is set when no listing produced a salary estimate
	NoData bool `json:"no_data,omitempty"`
}

// Report is the set of summaries rendered as one table
type Report struct {
	Title     string            `json:"title"`
	Source    string            `json:"source"`
	Summaries []LanguageSummary `json:"summaries"`
}
