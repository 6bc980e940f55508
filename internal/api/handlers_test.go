package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CreditSentinel/internal/marketdata"
	"CreditSentinel/internal/model"
	"CreditSentinel/internal/pipeline"
	"CreditSentinel/internal/scheduler"
	"CreditSentinel/internal/store"
)

func testServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	s := New(":0", st, nil)
	ts := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, st
}

func seedOne(t *testing.T, st store.Store) {
	t.Helper()
	mcap := 3.2e12
	err := st.Upsert(context.Background(), &model.ScoreRecord{
		Name:        "Apple Inc.",
		Ticker:      "AAPL",
		Sector:      "Technology",
		MarketCap:   &mcap,
		LastUpdated: time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC),
		Score:       78.5,
		ScoreFactors: []model.ScoreFactor{
			{Text: "Solid performance metrics contribute to a good overall score.", Positive: true},
		},
		Sentiment: []model.SentimentBucket{
			{Category: "News", Positive: 80, Negative: 20},
		},
		CreditTrend: []model.TrendPoint{{Month: "Aug", Score: 78.5}},
		Metrics:     map[string]string{"revenue": "$391.04B"},
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func TestHandleHealth(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %q", body["status"])
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"]); err != nil {
		t.Errorf("timestamp not RFC3339: %q", body["timestamp"])
	}
}

func TestHandleListCompanies(t *testing.T) {
	ts, st := testServer(t)
	seedOne(t, st)

	resp, err := http.Get(ts.URL + "/api/companies")
	if err != nil {
		t.Fatalf("get companies: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var refs []model.CompanyRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(refs) != 1 || refs[0].Ticker != "AAPL" {
		t.Errorf("unexpected list: %+v", refs)
	}
}

func TestHandleListCompanies_Empty(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/api/companies")
	if err != nil {
		t.Fatalf("get companies: %v", err)
	}
	defer resp.Body.Close()

	var refs []model.CompanyRef
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if refs == nil || len(refs) != 0 {
		t.Errorf("expected empty array, got %v", refs)
	}
}

func TestHandleCompanyDetail(t *testing.T) {
	ts, st := testServer(t)
	seedOne(t, st)

	resp, err := http.Get(ts.URL + "/api/companies/Apple%20Inc.")
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var detail companyDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Ticker != "AAPL" || detail.Score != 78.5 {
		t.Errorf("unexpected detail: %+v", detail)
	}
	if detail.LastUpdated != "August 31, 2026" {
		t.Errorf("expected display-formatted date, got %q", detail.LastUpdated)
	}
	if len(detail.Sentiment) != 1 || detail.Sentiment[0].Positive != 80 {
		t.Errorf("sentiment not serialized: %+v", detail.Sentiment)
	}
}

func TestHandleCompanyDetail_NotFound(t *testing.T) {
	ts, st := testServer(t)
	seedOne(t, st)

	resp, err := http.Get(ts.URL + "/api/companies/Ghost%20Corp.")
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Company not found" {
		t.Errorf("unexpected error body: %v", body)
	}
}

func TestHandleRefresh_RunsPipeline(t *testing.T) {
	st := store.NewMemoryStore()
	fetcher := &marketdata.MockFetcher{Price: 100}
	roster := []model.CompanyRef{{Name: "Apple Inc.", Ticker: "AAPL"}}
	p := pipeline.New(fetcher, nil, st, roster, rand.New(rand.NewSource(1)))
	sched := scheduler.NewScheduler(context.Background(), p)

	s := New(":0", st, sched)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("post refresh: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, err := st.GetByName(context.Background(), "Apple Inc."); err != nil {
		t.Errorf("expected record after manual refresh: %v", err)
	}
}

func TestHandleRefresh_Unavailable(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatalf("post refresh: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a scheduler, got %d", resp.StatusCode)
	}
}
