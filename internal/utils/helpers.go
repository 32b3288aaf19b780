package utils

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// validSources lists the supported source identifiers in report order
var validSources = []string{models.SourceHH, models.SourceSuperJob}

// ValidSources returns the supported source identifiers
func ValidSources() []string {
	return append([]string(nil), validSources...)
}

// IsValidSource checks if the source is supported
func IsValidSource(source string) bool {
	source = strings.ToLower(strings.TrimSpace(source))
	for _, s := range validSources {
		if s == source {
			return true
		}
	}
	return false
}

// ParseList splits a comma separated flag value, dropping blanks and duplicates
func ParseList(value string) []string {
	return UniqueList(strings.Split(value, ","))
}

// UniqueList trims items and drops blanks and case-insensitive duplicates, keeping the first spelling
func UniqueList(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[strings.ToLower(item)] {
			continue
		}
		seen[strings.ToLower(item)] = true
		out = append(out, item)
	}
	return out
}

// FormatRubles formats a salary with thousands separators and the ruble sign
func FormatRubles(amount int) string {
	return humanize.Comma(int64(amount)) + " ₽"
}

// TruncateString truncates a string to the specified length and adds "..." if necessary
func TruncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}
