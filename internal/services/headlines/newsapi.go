package headlines

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"news-map/internal/services/upstream"
)

// NewsAPIOptions configures the NewsAPI top-headlines query.
type NewsAPIOptions struct {
	BaseURL  string
	Country  string
	Language string
	PageSize int
}

// NewsAPIClient queries the NewsAPI v2 top-headlines endpoint.
type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	country    string
	language   string
	pageSize   int
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string, opts NewsAPIOptions, httpClient *http.Client) *NewsAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://newsapi.org"
	}

	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		country:    opts.Country,
		language:   opts.Language,
		pageSize:   opts.PageSize,
		httpClient: httpClient,
	}
}

type newsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string    `json:"author"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		Content     string    `json:"content"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (p newsAPIResponse) rawArticles(category string) []RawArticle {
	articles := make([]RawArticle, 0, len(p.Articles))
	for _, a := range p.Articles {
		articles = append(articles, RawArticle{
			Title:       strings.TrimSpace(a.Title),
			Author:      a.Author,
			URL:         a.URL,
			Content:     cleanContent(a.Content),
			Description: strings.TrimSpace(a.Description),
			Source:      a.Source.Name,
			Category:    category,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles
}

// TopHeadlines fetches the current headlines, in source order.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context, category string) ([]RawArticle, error) {
	category = NormalizeCategory(category)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(category), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build headlines request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, upstream.Transport(upstream.ServiceHeadlines, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, upstream.Transport(upstream.ServiceHeadlines, err)
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &upstream.UpstreamError{
			Service:    upstream.ServiceHeadlines,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("malformed response: %v", err),
			Err:        err,
		}
	}

	if resp.StatusCode >= http.StatusBadRequest || payload.Status != "ok" {
		message := payload.Message
		if message == "" {
			message = fmt.Sprintf("error fetching news for category %q", category)
		}
		return nil, &upstream.UpstreamError{
			Service:    upstream.ServiceHeadlines,
			StatusCode: resp.StatusCode,
			Status:     firstNonEmpty(payload.Code, payload.Status),
			Message:    message,
		}
	}

	return payload.rawArticles(category), nil
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) buildURL(category string) string {
	params := url.Values{}
	if c.country != "" {
		params.Set("country", c.country)
	}
	if category != "" {
		params.Set("category", category)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(c.pageSize))
	}
	return c.baseURL + "/v2/top-headlines?" + params.Encode()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
