package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"CreditSentinel/internal/model"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Yahoo Finance public API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. baseURL may be empty
// to use the public endpoint; proxyURL may be empty for a direct connection.
func NewYahooFetcher(baseURL, proxyURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// CompanyData fetches daily bars plus fundamentals for one ticker.
func (f *YahooFetcher) CompanyData(ctx context.Context, ticker string, lookbackDays int) (*model.CompanyData, error) {
	bars, err := f.fetchChart(ctx, ticker, lookbackDays)
	if err != nil {
		return nil, err
	}
	meta, err := f.fetchMeta(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return &model.CompanyData{
		Meta: *meta,
		Series: model.PriceSeries{
			Ticker:    ticker,
			Bars:      bars,
			FetchedAt: time.Now(),
		},
	}, nil
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rawValue is Yahoo's {raw, fmt} number wrapper; only raw matters here.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// yahooSummary is the response structure from the quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			SummaryProfile struct {
				Sector string `json:"sector"`
			} `json:"summaryProfile"`
			Price struct {
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			FinancialData struct {
				TotalRevenue   rawValue `json:"totalRevenue"`
				DebtToEquity   rawValue `json:"debtToEquity"`
				ProfitMargins  rawValue `json:"profitMargins"`
				ReturnOnEquity rawValue `json:"returnOnEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// rangeForDays picks the smallest Yahoo range covering the lookback window.
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) getJSON(ctx context.Context, u string, out interface{}) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, ticker string, days int) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(ticker), rangeForDays(days))

	var chart yahooChart
	if err := f.getJSON(ctx, u, &chart); err != nil {
		return nil, err
	}
	if e := chart.Chart.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, ticker)
		}
		return nil, fmt.Errorf("yahoo api error: %s", e.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: no bars for %s", ErrInsufficientData, ticker)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no quote data for %s", ErrInsufficientData, ticker)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue // skip null bars (holidays etc.)
		}
		var vol float64
		if i < len(quote.Volume) {
			vol = toFloat(quote.Volume[i])
		}
		bars = append(bars, model.Bar{
			Date:   time.Unix(ts, 0),
			Close:  c,
			Volume: vol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *YahooFetcher) fetchMeta(ctx context.Context, ticker string) (*model.CompanyMeta, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryProfile,price,financialData",
		f.BaseURL, url.PathEscape(ticker))

	var summary yahooSummary
	if err := f.getJSON(ctx, u, &summary); err != nil {
		return nil, err
	}
	if e := summary.QuoteSummary.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, ticker)
		}
		return nil, fmt.Errorf("yahoo api error: %s", e.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, ticker)
	}

	r := summary.QuoteSummary.Result[0]
	return &model.CompanyMeta{
		Sector:         r.SummaryProfile.Sector,
		MarketCap:      r.Price.MarketCap.Raw,
		Revenue:        r.FinancialData.TotalRevenue.Raw,
		DebtToEquity:   r.FinancialData.DebtToEquity.Raw,
		ProfitMargin:   r.FinancialData.ProfitMargins.Raw,
		ReturnOnEquity: r.FinancialData.ReturnOnEquity.Raw,
	}, nil
}
