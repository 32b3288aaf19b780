package salary

import (
	"errors"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

const (
	// lowerUplift is applied when only the lower bound is known
	lowerUplift = 1.2
	// upperDiscount is applied when only the upper bound is known
	upperDiscount = 0.8
)

// ErrInsufficientData is returned when there are no estimates to average
var ErrInsufficientData = errors.New("insufficient data: no salary estimates")

// Predict estimates a single salary figure from optional bounds.
func Predict(from, to *float64) (float64, bool) {
	switch {
	case from != nil && to != nil:
		return (*from + *to) / 2, true
	case from != nil:
		return *from * lowerUplift, true
	case to != nil:
		return *to * upperDiscount, true
	default:
		return 0, false
	}
}

// Estimate returns the salary estimate for a listing paid in the given currency.
// Listings in another currency or without any bound produce no estimate.
func Estimate(l models.Listing, currency string) (float64, bool) {
	if l.Currency != currency {
		return 0, false
	}
	return Predict(toFloat(l.SalaryFrom), toFloat(l.SalaryTo))
}

// Average returns the arithmetic mean of the estimates truncated to an integer.
func Average(estimates []float64) (int, error) {
	if len(estimates) == 0 {
		return 0, ErrInsufficientData
	}
	var sum float64
	for _, e := range estimates {
		sum += e
	}
	return int(sum / float64(len(estimates))), nil
}

func toFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
