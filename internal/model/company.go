package model

import (
	"errors"
	"time"
)

// Bar is a single daily price observation.
type Bar struct {
	Date   time.Time
	Close  float64
	Volume float64
}

// PriceSeries holds raw daily history for one company.
type PriceSeries struct {
	Ticker    string
	Bars      []Bar
	FetchedAt time.Time
}

// Validate checks the series invariants: dates strictly increasing and all
// closes positive. A series that fails validation must not be scored.
func (s *PriceSeries) Validate() error {
	for i, b := range s.Bars {
		if b.Close <= 0 {
			return errors.New("price series contains non-positive close")
		}
		if i > 0 && !s.Bars[i-1].Date.Before(b.Date) {
			return errors.New("price series dates not strictly increasing")
		}
	}
	return nil
}

// Closes extracts the close prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// CompanyMeta holds fundamentals for one company. Every field except Sector
// may be absent upstream, hence the pointers.
type CompanyMeta struct {
	Sector         string
	MarketCap      *float64
	Revenue        *float64
	DebtToEquity   *float64
	ProfitMargin   *float64
	ReturnOnEquity *float64
}

// CompanyData bundles everything the market-data source returns for one fetch.
type CompanyData struct {
	Meta   CompanyMeta
	Series PriceSeries
}

// CompanyRef identifies one tracked company.
type CompanyRef struct {
	Name   string `json:"name" yaml:"name"`
	Ticker string `json:"ticker" yaml:"ticker"`
}
