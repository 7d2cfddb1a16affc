package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"ResearchScout/internal/concepts"
	"ResearchScout/internal/domain"
	"ResearchScout/internal/ports"
)

const (
	previewLimit        = 500
	previewEllipsis     = "..."
	maxPageBytes        = 5 << 20
	nonContentSelectors = "script, style, nav, header, footer"
	headingSelectors    = "h1, h2, h3, h4, h5, h6"
	blockSelectors      = "p, li, pre, blockquote, tr, br, div"
)

// SiteCrawlerOptions tunes link discovery and content extraction.
type SiteCrawlerOptions struct {
	UserAgent        string
	LinkPrefixes     []string
	ContentSelectors []string
	MaxPages         int
}

// SiteCrawler fetches a base page, follows article links, and analyzes each page.
type SiteCrawler struct {
	client    *http.Client
	extractor *concepts.Extractor
	logger    *slog.Logger
	opts      SiteCrawlerOptions
	maxBytes  int64
}

var _ ports.SiteCrawler = (*SiteCrawler)(nil)

// NewSiteCrawler wires an HTTP client and concept extractor; nil values get defaults.
func NewSiteCrawler(client *http.Client, extractor *concepts.Extractor, opts SiteCrawlerOptions, log *slog.Logger) *SiteCrawler {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if extractor == nil {
		extractor = concepts.NewExtractor(nil)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "ResearchScout/1.0"
	}
	if len(opts.LinkPrefixes) == 0 {
		opts.LinkPrefixes = []string{"/docs/", "docs/", "/blog/", "/articles/"}
	}
	if len(opts.ContentSelectors) == 0 {
		opts.ContentSelectors = []string{"article", ".theme-doc-markdown", ".markdown", "main", ".content"}
	}
	return &SiteCrawler{client: client, extractor: extractor, logger: log, opts: opts, maxBytes: maxPageBytes}
}

// Crawl analyzes every article reachable from baseURL. A failed base request
// yields an unsuccessful outcome; failed article pages are skipped.
func (c *SiteCrawler) Crawl(ctx context.Context, baseURL string) domain.Outcome[domain.ArticleMetadata] {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		c.warn("invalid base url", "url", baseURL, "error", err)
		return domain.Fail[domain.ArticleMetadata](fmt.Sprintf("invalid base url %q", baseURL))
	}

	body, err := c.fetchBody(ctx, base.String())
	if err != nil {
		c.warn("base page unavailable", "url", baseURL, "error", err)
		return domain.Fail[domain.ArticleMetadata](fmt.Sprintf("fetch base page: %v", err))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		c.warn("base page unparsable", "url", baseURL, "error", err)
		return domain.Fail[domain.ArticleMetadata](fmt.Sprintf("parse base page: %v", err))
	}

	links := discoverLinks(doc, base, c.opts.LinkPrefixes, c.opts.MaxPages)
	c.debug("links discovered", "base", baseURL, "count", len(links))

	articles := make([]domain.ArticleMetadata, 0, len(links))
	for _, link := range links {
		if ctx.Err() != nil {
			break
		}

		pageBody, err := c.fetchBody(ctx, link)
		if err != nil {
			c.warn("skip page", "url", link, "error", err)
			continue
		}

		article, err := c.buildArticle(link, pageBody)
		if err != nil {
			c.warn("page parse failed, keeping default record", "url", link, "error", err)
		}
		articles = append(articles, article)
	}

	c.debug("site crawl done", "base", baseURL, "articles", len(articles))
	return domain.Succeed(articles)
}

func (c *SiteCrawler) fetchBody(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("site returned %s", resp.Status)
	}

	// One byte past the limit tells a truncated page from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		c.warn("page truncated, concept counts may be low", "url", pageURL, "limit_bytes", c.maxBytes)
		body = body[:c.maxBytes]
	}
	return body, nil
}

// buildArticle always returns a usable record; on parse failure it carries only the URL.
func (c *SiteCrawler) buildArticle(pageURL string, body []byte) (domain.ArticleMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return defaultArticle(pageURL), fmt.Errorf("parse page: %w", err)
	}

	// Metadata first: text extraction rewrites the document.
	title := extractTitle(doc)
	description := extractDescription(doc)
	tags := extractTags(doc)
	authors := extractAuthors(doc)
	date := extractDate(doc)

	page := domain.PageRecord{
		URL:     pageURL,
		Title:   title,
		RawText: extractText(doc, c.opts.ContentSelectors),
	}
	extraction := c.extractor.Extract(page.RawText)

	return domain.ArticleMetadata{
		URL:           page.URL,
		Title:         page.Title,
		Description:   description,
		Tags:          tags,
		Authors:       authors,
		Date:          date,
		ContentLength: utf8.RuneCountInString(page.RawText),
		WordCount:     len(strings.Fields(page.RawText)),
		BodyPreview:   preview(page.RawText),
		Headings:      extraction.Headings,
		KeyConcepts:   extraction.KeyConcepts,
	}, nil
}

func defaultArticle(pageURL string) domain.ArticleMetadata {
	return domain.ArticleMetadata{
		URL:         pageURL,
		Tags:        []string{},
		Authors:     []string{},
		Headings:    []domain.Heading{},
		KeyConcepts: map[string]int{},
	}
}

// discoverLinks returns same-host article links in discovery order. An href
// qualifies when it contains one of the prefixes, so sites served under a base
// path (/project/docs/...) still match.
func discoverLinks(doc *goquery.Document, base *url.URL, prefixes []string, limit int) []string {
	seen := map[string]struct{}{}
	links := make([]string, 0)

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if limit > 0 && len(links) >= limit {
			return false
		}

		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !hasAnyPrefix(href, prefixes) {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if (abs.Scheme != "http" && abs.Scheme != "https") || abs.Host != base.Host {
			return true
		}
		abs.Fragment = ""
		abs.RawFragment = ""

		key := abs.String()
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		links = append(links, key)
		return true
	})

	return links
}

func hasAnyPrefix(href string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.Contains(href, p) {
			return true
		}
	}
	return false
}

func extractTitle(doc *goquery.Document) string {
	if h1 := cleanText(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if title := cleanText(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		return strings.TrimSpace(ogTitle)
	}
	return ""
}

func extractDescription(doc *goquery.Document) string {
	if desc, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		return strings.TrimSpace(desc)
	}
	if ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists {
		return strings.TrimSpace(ogDesc)
	}
	return ""
}

func extractTags(doc *goquery.Document) []string {
	set := map[string]struct{}{}
	if keywords, exists := doc.Find("meta[name='keywords']").Attr("content"); exists {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				set[kw] = struct{}{}
			}
		}
	}
	doc.Find("meta[property='article:tag']").Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.AttrOr("content", "")); tag != "" {
			set[tag] = struct{}{}
		}
	})

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func extractAuthors(doc *goquery.Document) []string {
	authors := make([]string, 0)
	seen := map[string]struct{}{}
	add := func(name string) {
		name = cleanText(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		authors = append(authors, name)
	}

	if author, exists := doc.Find("meta[name='author']").Attr("content"); exists {
		add(author)
	}
	doc.Find(".avatar__name").Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})
	return authors
}

func extractDate(doc *goquery.Document) string {
	if dt, exists := doc.Find("time[datetime]").First().Attr("datetime"); exists {
		return strings.TrimSpace(dt)
	}
	if published, exists := doc.Find("meta[property='article:published_time']").Attr("content"); exists {
		return strings.TrimSpace(published)
	}
	return ""
}

// extractText takes the first matching content container (falling back to
// <body>) and renders it as lines, with headings as "#"-prefixed lines.
func extractText(doc *goquery.Document, selectors []string) string {
	var container *goquery.Selection
	for _, sel := range selectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			container = found
			break
		}
	}
	if container == nil {
		container = doc.Find("body").First()
		if container.Length() == 0 {
			container = doc.Selection
		}
	}

	container.Find(nonContentSelectors).Remove()
	container.Find(headingSelectors).Each(func(_ int, h *goquery.Selection) {
		level := int(goquery.NodeName(h)[1] - '0')
		h.SetText("\n" + strings.Repeat("#", level) + " " + cleanText(h.Text()) + "\n")
	})
	container.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	return normalizeLines(container.Text())
}

func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = cleanText(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// cleanText collapses whitespace and drops zero-width characters left by anchor links.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u200b", "")
	return strings.Join(strings.Fields(s), " ")
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewLimit {
		return body
	}
	runes := []rune(body)
	return string(runes[:previewLimit]) + previewEllipsis
}

func (c *SiteCrawler) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *SiteCrawler) warn(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
