package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range pages {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCrawl_FollowsSameOriginLinks(t *testing.T) {
	srv := newTestSite(t, map[string]string{
		"/": `<html><body><p>Home page text.</p>
			<a href="/about">About</a>
			<a href="https://elsewhere.example/external">External</a>
		</body></html>`,
		"/about": `<html><body><p>About page text.</p><a href="/">Home</a></body></html>`,
	})

	c := New(5*time.Second, "Mozilla/5.0")
	text, err := c.Crawl(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	if !strings.Contains(text, "Home page text.") {
		t.Errorf("Expected home page text in corpus, got: %q", text)
	}
	if !strings.Contains(text, "About page text.") {
		t.Errorf("Expected about page text in corpus, got: %q", text)
	}
}

func TestCrawl_TerminatesOnCycles(t *testing.T) {
	srv := newTestSite(t, map[string]string{
		"/":  `<html><body>a <a href="/b">b</a></body></html>`,
		"/b": `<html><body>b <a href="/">a</a> <a href="/b">self</a></body></html>`,
	})

	c := New(5*time.Second, "Mozilla/5.0")
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := c.Crawl(context.Background(), srv.URL, 10); err != nil {
			t.Errorf("Crawl returned error: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Crawl did not terminate on a cyclic link graph")
	}
}

func TestCrawl_RespectsMaxPages(t *testing.T) {
	seen := make(map[string]bool)

	mux := http.NewServeMux()
	// Every page links to two fresh pages, so the graph is unbounded.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen[r.URL.Path] = true
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>page ` + r.URL.Path +
			` <a href="` + r.URL.Path + `x">next</a> <a href="` + r.URL.Path + `y">other</a></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(5*time.Second, "Mozilla/5.0")
	if _, err := c.Crawl(context.Background(), srv.URL+"/", 5); err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	if len(seen) > 5 {
		t.Errorf("Crawler fetched %d pages, want at most 5", len(seen))
	}
}

func TestCrawl_StripsNonContentElements(t *testing.T) {
	srv := newTestSite(t, map[string]string{
		"/": `<html><body>
			<script>var hidden = "ignore me";</script>
			<style>.x { color: red }</style>
			<nav>Nav links</nav>
			<header>Header text</header>
			<footer>Footer text</footer>
			<p>Visible   content
			here.</p>
		</body></html>`,
	})

	c := New(5*time.Second, "Mozilla/5.0")
	text, err := c.Crawl(context.Background(), srv.URL, 1)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}

	for _, hidden := range []string{"ignore me", "Nav links", "Header text", "Footer text"} {
		if strings.Contains(text, hidden) {
			t.Errorf("Corpus should not contain %q, got: %q", hidden, text)
		}
	}
	if !strings.Contains(text, "Visible content here.") {
		t.Errorf("Expected whitespace-collapsed visible text, got: %q", text)
	}
}

func TestCrawl_PageFailureIsNotFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>good page <a href="/broken">broken</a> <a href="/ok">ok</a></body></html>`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>second good page</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(5*time.Second, "Mozilla/5.0")
	text, err := c.Crawl(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if !strings.Contains(text, "good page") || !strings.Contains(text, "second good page") {
		t.Errorf("Expected both healthy pages despite one failure, got: %q", text)
	}
}

func TestCrawl_FragmentsDoNotDuplicateVisits(t *testing.T) {
	visits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>root <a href="/page#a">a</a> <a href="/page#b">b</a></body></html>`))
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		visits++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>target</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(5*time.Second, "Mozilla/5.0")
	if _, err := c.Crawl(context.Background(), srv.URL, 10); err != nil {
		t.Fatalf("Crawl returned error: %v", err)
	}
	if visits != 1 {
		t.Errorf("Fragment-only variants should resolve to one visit, got %d", visits)
	}
}

func TestCrawl_InvalidSeed(t *testing.T) {
	c := New(time.Second, "Mozilla/5.0")
	if _, err := c.Crawl(context.Background(), "not a url", 5); err == nil {
		t.Error("Expected error for invalid seed URL")
	}
}
