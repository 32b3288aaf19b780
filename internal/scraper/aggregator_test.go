package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
)

func newTestAggregator(t *testing.T, maxPages int) *Aggregator {
	t.Helper()
	httpClient, err := client.CreateHTTPClient(client.Options{})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return NewAggregator(httpClient, nil, AggregatorOptions{MaxPages: maxPages})
}

func hhTestSource(baseURL string) *HHSource {
	cfg := config.Default()
	cfg.HH.BaseURL = baseURL
	return NewHHSource(cfg.HH, cfg.SearchPrefix, cfg.PerPage)
}

func sjTestSource(t *testing.T, baseURL string) *SuperJobSource {
	t.Helper()
	cfg := config.Default()
	cfg.SuperJob.BaseURL = baseURL
	cfg.SuperJob.SecretKey = "test-key"
	src, err := NewSuperJobSource(cfg.SuperJob, cfg.SearchPrefix, cfg.PerPage)
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	return src
}

func TestCollectHHSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("text"); got != "Программист Python" {
			t.Errorf("unexpected search text %q", got)
		}
		if r.URL.Query().Get("per_page") != "100" || r.URL.Query().Get("area") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{
			"found": 2, "pages": 1, "page": 0, "per_page": 100,
			"items": [
				{"id": "1", "name": "Python developer", "salary": {"from": 100000, "to": 120000, "currency": "RUR"},
				 "snippet": {"requirement": "Опыт <highlighttext>Python</highlighttext> от 3 лет", "responsibility": null}},
				{"id": "2", "name": "Python lead", "salary": {"from": 5000, "to": null, "currency": "USD"}}
			]
		}`)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 10)
	summary, listings, err := agg.Collect(context.Background(), hhTestSource(srv.URL), "Python")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if summary.VacanciesFound != 2 || summary.VacanciesProcessed != 1 || summary.AverageSalary != 110000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.NoData {
		t.Fatalf("summary should have data")
	}
	if listings[0].Snippet != "Опыт Python от 3 лет" {
		t.Fatalf("unexpected snippet %q", listings[0].Snippet)
	}
}

func TestCollectNoEstimatesIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"found": 2, "pages": 1,
			"items": [
				{"id": "1", "name": "1C developer", "salary": null},
				{"id": "2", "name": "1C consultant", "salary": {"from": 2000, "to": 3000, "currency": "EUR"}}
			]
		}`)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 10)
	summary, _, err := agg.Collect(context.Background(), hhTestSource(srv.URL), "1C")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if !summary.NoData {
		t.Fatalf("expected NoData summary, got %+v", summary)
	}
	if summary.VacanciesProcessed != 0 || summary.AverageSalary != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestCollectHHStopsAtReportedPages(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page != int(n)-1 {
			t.Errorf("expected page %d, got %d", n-1, page)
		}
		fmt.Fprintf(w, `{"found": 250, "pages": 3, "items": [
			{"id": "%d", "salary": {"from": 100000, "to": null, "currency": "RUR"}}
		]}`, page)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 10)
	summary, listings, err := agg.Collect(context.Background(), hhTestSource(srv.URL), "Java")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 3 {
		t.Fatalf("expected exactly 3 requests, got %d", got)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(listings))
	}
	if summary.VacanciesFound != 250 {
		t.Fatalf("expected found from source metadata, got %d", summary.VacanciesFound)
	}
	if summary.VacanciesProcessed != 3 || summary.AverageSalary != 120000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestCollectSuperJobFollowsMoreFlag(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-App-Id") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if r.URL.Query().Get("catalogues") != "33" || r.URL.Query().Get("town") != "4" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		n := atomic.AddInt32(&requests, 1)
		more := n < 2
		fmt.Fprintf(w, `{"total": 150, "more": %t, "objects": [
			{"id": %d, "profession": "Java", "payment_from": 0, "payment_to": 100000, "currency": "rub"},
			{"id": %d, "profession": "Java", "payment_from": 0, "payment_to": 0, "currency": "rub"}
		]}`, more, n*10, n*10+1)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 10)
	summary, listings, err := agg.Collect(context.Background(), sjTestSource(t, srv.URL), "Java")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
	if len(listings) != 4 {
		t.Fatalf("expected 4 listings, got %d", len(listings))
	}
	if summary.VacanciesFound != 150 || summary.VacanciesProcessed != 2 || summary.AverageSalary != 80000 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestCollectRespectsMaxPages(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, `{"total": 100000, "more": true, "objects": []}`)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 4)
	summary, _, err := agg.Collect(context.Background(), sjTestSource(t, srv.URL), "Python")
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 4 {
		t.Fatalf("expected the loop to stop after 4 requests, got %d", got)
	}
	if !summary.NoData {
		t.Fatalf("expected NoData summary")
	}
}

func TestCollectAbortsOnHTTPError(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		if n == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"found": 300, "pages": 3, "items": [{"id": "1", "salary": {"from": 1, "to": 2, "currency": "RUR"}}]}`)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 10)
	summary, listings, err := agg.Collect(context.Background(), hhTestSource(srv.URL), "Python")
	var statusErr *client.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *client.StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", statusErr.StatusCode)
	}
	if summary != nil || listings != nil {
		t.Fatalf("expected no partial result")
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Fatalf("expected no request after the failure, got %d", got)
	}
}

func TestCollectMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [`)
	}))
	defer srv.Close()

	agg := newTestAggregator(t, 10)
	if _, _, err := agg.Collect(context.Background(), hhTestSource(srv.URL), "Python"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestCollectCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"found": 0, "pages": 0, "items": []}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := newTestAggregator(t, 10)
	_, _, err := agg.Collect(ctx, hhTestSource(srv.URL), "Python")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
