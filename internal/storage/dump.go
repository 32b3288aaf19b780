package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// Dump is the JSON document written by -dump
type Dump struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Reports   []models.Report `json:"reports"`
	Queries   []QueryListings `json:"queries"`
}

// QueryListings holds every listing retrieved for one source and language
type QueryListings struct {
	Source   string           `json:"source"`
	Language string           `json:"language"`
	Listings []models.Listing `json:"listings"`
}

// NewDump starts a dump with a fresh run ID
func NewDump() *Dump {
	return &Dump{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// AddListings records the listings of one query
func (d *Dump) AddListings(source, language string, listings []models.Listing) {
	d.Queries = append(d.Queries, QueryListings{Source: source, Language: language, Listings: listings})
}

// WriteFile writes the dump as indented JSON
func (d *Dump) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	return nil
}
