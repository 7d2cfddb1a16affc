package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"ResearchScout/internal/domain"
	"ResearchScout/internal/scanner"
)

const (
	arxivAPIURL      = "http://export.arxiv.org/api/query"
	arxivDateLayout  = "200601021504"
	arxivSearcherKey = "arxiv"
)

// ArxivSearcher queries the arXiv Atom API and normalizes entries into paper records.
type ArxivSearcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
	logger    *slog.Logger
}

var _ scanner.Searcher = (*ArxivSearcher)(nil)

// NewArxivSearcher wires an HTTP client; an empty endpoint means the public arXiv API.
func NewArxivSearcher(client *http.Client, endpoint, userAgent string, log *slog.Logger) *ArxivSearcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if endpoint == "" {
		endpoint = arxivAPIURL
	}
	if userAgent == "" {
		userAgent = "ResearchScout/1.0"
	}
	return &ArxivSearcher{client: client, endpoint: endpoint, userAgent: userAgent, logger: log}
}

// Name identifies the strategy inside the registry.
func (a *ArxivSearcher) Name() string {
	return arxivSearcherKey
}

// Search issues one request and returns at most q.MaxResults papers.
func (a *ArxivSearcher) Search(ctx context.Context, q scanner.Query) ([]domain.PaperRecord, error) {
	queryURL, err := buildQueryURL(a.endpoint, q)
	if err != nil {
		return nil, err
	}

	feed, err := a.fetchFeed(ctx, queryURL)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", q.Text, err)
	}

	papers := make([]domain.PaperRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if q.MaxResults > 0 && len(papers) >= q.MaxResults {
			break
		}
		papers = append(papers, toPaper(item))
	}

	if a.logger != nil {
		a.logger.Debug("arxiv query done", "query", q.Text, "papers", len(papers))
	}
	return papers, nil
}

func (a *ArxivSearcher) fetchFeed(ctx context.Context, queryURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

func toPaper(item *gofeed.Item) domain.PaperRecord {
	authors := make([]string, 0, len(item.Authors))
	for _, person := range item.Authors {
		if person != nil && strings.TrimSpace(person.Name) != "" {
			authors = append(authors, strings.TrimSpace(person.Name))
		}
	}

	link := item.Link
	if link == "" && strings.HasPrefix(item.GUID, "http") {
		link = item.GUID
	}

	published := item.Published
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC().Format(time.RFC3339)
	}

	categories := item.Categories
	if categories == nil {
		categories = []string{}
	}

	return domain.PaperRecord{
		Title:      cleanText(item.Title),
		Authors:    authors,
		Summary:    cleanText(item.Description),
		URL:        link,
		Published:  published,
		Categories: categories,
		Source:     domain.PaperSourceArxiv,
	}
}

// buildQueryURL restricts the topic query to papers submitted within [q.From, q.To].
func buildQueryURL(base string, q scanner.Query) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid arxiv endpoint %s: %w", base, err)
	}

	search := fmt.Sprintf(`all:"%s"`, q.Text)
	if !q.From.IsZero() && !q.To.IsZero() {
		search = fmt.Sprintf("%s AND submittedDate:[%s TO %s]",
			search, q.From.UTC().Format(arxivDateLayout), q.To.UTC().Format(arxivDateLayout))
	}

	query := parsed.Query()
	query.Set("search_query", search)
	query.Set("start", "0")
	query.Set("max_results", strconv.Itoa(q.MaxResults))
	query.Set("sortBy", "submittedDate")
	query.Set("sortOrder", "descending")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
