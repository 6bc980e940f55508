package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client implements Provider using the News API "everything" endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a News API client with optional proxy support.
func NewClient(baseURL, apiKey, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

func (c *Client) Name() string { return "newsapi" }

// newsResponse is the expected JSON shape from the News API.
type newsResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// TopHeadlines returns up to limit headline titles for the query, ranked by
// relevancy.
func (c *Client) TopHeadlines(ctx context.Context, query string, limit int) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(limit))
	params.Set("apiKey", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read headlines: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api: status %d, body: %s", resp.StatusCode, string(body))
	}

	var nr newsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("decode headlines: %w", err)
	}
	if nr.Status != "ok" {
		return nil, fmt.Errorf("news api error: %s", nr.Message)
	}

	headlines := make([]string, 0, len(nr.Articles))
	for _, a := range nr.Articles {
		if a.Title != "" {
			headlines = append(headlines, a.Title)
		}
	}
	return headlines, nil
}
