package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"ResearchScout/internal/logging"
)

const basePageHTML = `<html><body>
<nav><a href="/docs/intro">Intro</a></nav>
<a href="/docs/intro#section">Intro again</a>
<a href="/blog/post">Post</a>
<a href="/docs/missing">Missing</a>
<a href="/about">About</a>
<a href="https://other.example.com/docs/x">External</a>
</body></html>`

const docPageHTML = `<html>
<head>
  <title>Intro | Site</title>
  <meta name="description" content="Why trust matters.">
  <meta name="keywords" content="trust, ai, trust">
  <meta name="author" content="Sam">
</head>
<body>
  <nav>Docs navigation</nav>
  <article>
    <h1>Intro to Trust<a class="hash-link" href="#intro">&#8203;</a></h1>
    <p>Trust matters in human-AI collaboration.</p>
    <h2>Mental Models</h2>
    <p>Mental models help.</p>
    <time datetime="2025-05-01T00:00:00Z">May 1</time>
  </article>
  <footer>Footer text</footer>
</body>
</html>`

const blogPageHTML = `<html>
<head><title>Blog Post</title></head>
<body>
  <nav>Navigation docs</nav>
  <p>Workflow notes and workflows.</p>
</body>
</html>`

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(basePageHTML))
	})
	mux.HandleFunc("/docs/intro", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(docPageHTML))
	})
	mux.HandleFunc("/blog/post", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(blogPageHTML))
	})
	return httptest.NewServer(mux)
}

func TestDiscoverLinks(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(basePageHTML))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	base, _ := url.Parse("https://site.example.com/")

	links := discoverLinks(doc, base, []string{"/docs/", "docs/", "/blog/", "/articles/"}, 0)
	want := []string{
		"https://site.example.com/docs/intro",
		"https://site.example.com/blog/post",
		"https://site.example.com/docs/missing",
	}
	if strings.Join(links, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected links: %v", links)
	}

	limited := discoverLinks(doc, base, []string{"/docs/"}, 1)
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %v", limited)
	}
}

func TestSiteCrawlerCrawl(t *testing.T) {
	t.Parallel()

	server := newSiteServer(t)
	defer server.Close()

	crawler := NewSiteCrawler(server.Client(), nil, SiteCrawlerOptions{}, nil)
	outcome := crawler.Crawl(context.Background(), server.URL+"/")

	if !outcome.Succeeded {
		t.Fatalf("expected success, diagnostic: %s", outcome.Diagnostic)
	}
	if len(outcome.Items) != 2 {
		t.Fatalf("expected 2 articles (missing page skipped), got %d", len(outcome.Items))
	}

	doc := outcome.Items[0]
	if doc.URL != server.URL+"/docs/intro" {
		t.Fatalf("unexpected url: %s", doc.URL)
	}
	if doc.Title != "Intro to Trust" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if doc.Description != "Why trust matters." {
		t.Fatalf("unexpected description: %q", doc.Description)
	}
	if strings.Join(doc.Tags, ",") != "ai,trust" {
		t.Fatalf("unexpected tags: %v", doc.Tags)
	}
	if len(doc.Authors) != 1 || doc.Authors[0] != "Sam" {
		t.Fatalf("unexpected authors: %v", doc.Authors)
	}
	if doc.Date != "2025-05-01T00:00:00Z" {
		t.Fatalf("unexpected date: %s", doc.Date)
	}
	if len(doc.Headings) != 2 || doc.Headings[0].Level != 1 || doc.Headings[0].Text != "Intro to Trust" ||
		doc.Headings[1].Level != 2 || doc.Headings[1].Text != "Mental Models" {
		t.Fatalf("unexpected headings: %+v", doc.Headings)
	}
	if doc.KeyConcepts["trust"] != 2 || doc.KeyConcepts["mental model"] != 2 || doc.KeyConcepts["human-ai"] != 1 {
		t.Fatalf("unexpected concepts: %v", doc.KeyConcepts)
	}
	if strings.Contains(doc.BodyPreview, "Docs navigation") || strings.Contains(doc.BodyPreview, "Footer") {
		t.Fatalf("non-content leaked into body: %q", doc.BodyPreview)
	}
	if doc.ContentLength != utf8.RuneCountInString(doc.BodyPreview) || doc.WordCount != len(strings.Fields(doc.BodyPreview)) {
		t.Fatalf("length invariants broken: len=%d words=%d body=%q", doc.ContentLength, doc.WordCount, doc.BodyPreview)
	}

	blog := outcome.Items[1]
	if blog.Title != "Blog Post" {
		t.Fatalf("unexpected blog title: %q", blog.Title)
	}
	if blog.KeyConcepts["workflow"] != 2 {
		t.Fatalf("expected body fallback to count workflows, got %v", blog.KeyConcepts)
	}
	if strings.Contains(blog.BodyPreview, "Navigation") {
		t.Fatalf("nav leaked into fallback body: %q", blog.BodyPreview)
	}
}

func TestSiteCrawlerBaseFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	outcome := NewSiteCrawler(server.Client(), nil, SiteCrawlerOptions{}, nil).Crawl(context.Background(), server.URL)

	if outcome.Succeeded {
		t.Fatal("expected failed outcome")
	}
	if outcome.Items == nil || len(outcome.Items) != 0 {
		t.Fatalf("expected empty item list, got %v", outcome.Items)
	}
	if !strings.Contains(outcome.Diagnostic, "500") {
		t.Fatalf("expected status in diagnostic, got %q", outcome.Diagnostic)
	}
}

func TestSiteCrawlerRejectsRelativeBase(t *testing.T) {
	t.Parallel()

	outcome := NewSiteCrawler(nil, nil, SiteCrawlerOptions{}, nil).Crawl(context.Background(), "docs/intro")
	if outcome.Succeeded {
		t.Fatal("expected failed outcome for relative base url")
	}
}

func TestPreviewTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", 600)
	got := preview(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got suffix %q", got[len(got)-5:])
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != 500 {
		t.Fatalf("expected 500 runes, got %d", n)
	}
	if preview("short") != "short" {
		t.Fatal("short bodies must not be altered")
	}
}

func TestBuildArticleWithoutContainer(t *testing.T) {
	t.Parallel()

	crawler := NewSiteCrawler(nil, nil, SiteCrawlerOptions{}, nil)
	article, err := crawler.buildArticle("https://x.example/docs/a", bytes.NewBufferString("plain trust text").Bytes())
	if err != nil {
		t.Fatalf("buildArticle error: %v", err)
	}
	if article.KeyConcepts["trust"] != 1 || article.WordCount != 3 {
		t.Fatalf("unexpected article: %+v", article)
	}
}

func TestBuildArticleCountsCharacters(t *testing.T) {
	t.Parallel()

	crawler := NewSiteCrawler(nil, nil, SiteCrawlerOptions{}, nil)
	article, err := crawler.buildArticle("https://x.example/docs/a", []byte("<article><p>Confiance naïve é</p></article>"))
	if err != nil {
		t.Fatalf("buildArticle error: %v", err)
	}
	if article.BodyPreview != "Confiance naïve é" {
		t.Fatalf("unexpected body: %q", article.BodyPreview)
	}
	if article.ContentLength != 17 {
		t.Fatalf("unexpected content length: %d (bytes %d)", article.ContentLength, len(article.BodyPreview))
	}
}

func TestFetchBodyWarnsWhenTruncated(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := 32
		if r.URL.Path == "/big" {
			size = 48
		}
		fmt.Fprint(w, strings.Repeat("x", size))
	}))
	defer server.Close()

	var logs bytes.Buffer
	crawler := NewSiteCrawler(server.Client(), nil, SiteCrawlerOptions{}, logging.NewWithWriter(&logs, "debug", "text"))
	crawler.maxBytes = 32

	body, err := crawler.fetchBody(context.Background(), server.URL+"/fits")
	if err != nil {
		t.Fatalf("fetchBody error: %v", err)
	}
	if len(body) != 32 || strings.Contains(logs.String(), "page truncated") {
		t.Fatalf("page at the limit must be kept whole and silently: len=%d logs=%q", len(body), logs.String())
	}

	body, err = crawler.fetchBody(context.Background(), server.URL+"/big")
	if err != nil {
		t.Fatalf("fetchBody error: %v", err)
	}
	if len(body) != 32 {
		t.Fatalf("unexpected body length: %d", len(body))
	}
	if !strings.Contains(logs.String(), "level=WARN") || !strings.Contains(logs.String(), "page truncated") {
		t.Fatalf("expected truncation warning, got %q", logs.String())
	}
}
