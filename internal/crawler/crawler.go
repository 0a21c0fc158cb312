package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// strippedSelector matches elements that carry no visible page content.
const strippedSelector = "script, style, nav, footer, header, noscript"

var whitespaceRe = regexp.MustCompile(`\s+`)

// Crawler fetches pages reachable from a seed URL within the seed's
// origin and accumulates their visible text.
type Crawler struct {
	client    *http.Client
	userAgent string
}

func New(timeout time.Duration, userAgent string) *Crawler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Crawler{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Crawl walks the link graph breadth-first from seedURL, visiting at most
// maxPages distinct same-origin URLs, and returns the concatenated text of
// every page that yielded content. A single page failure is logged and
// skipped; it never aborts the run.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int) (string, error) {
	seed, err := url.Parse(seedURL)
	if err != nil || seed.Scheme == "" || seed.Host == "" {
		return "", fmt.Errorf("invalid seed URL %q", seedURL)
	}
	seed.Fragment = ""

	visited := make(map[string]bool)
	queue := []string{seed.String()}
	var corpus strings.Builder

	log.Info().Str("origin", origin(seed)).Msg("Starting crawl")

	for len(queue) > 0 && len(visited) < maxPages {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		log.Debug().
			Str("url", current).
			Int("visited", len(visited)).
			Int("limit", maxPages).
			Int("queue", len(queue)).
			Msg("Crawling page")

		pageText, links, err := c.fetchPage(ctx, current)
		if err != nil {
			log.Warn().Err(err).Str("url", current).Msg("Skipping page")
			continue
		}

		if pageText != "" {
			corpus.WriteString(pageText)
			corpus.WriteString("\n\n")
		}

		for _, link := range links {
			if sameOrigin(seed, link) && !visited[link.String()] {
				queue = append(queue, link.String())
			}
		}
	}

	if len(visited) >= maxPages {
		log.Info().Int("max_pages", maxPages).Msg("Reached max page limit")
	}
	log.Info().Int("pages", len(visited)).Msg("Crawl complete")

	return corpus.String(), nil
}

// fetchPage downloads one page and returns its visible text plus every
// absolute link found in it.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (string, []*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "text/html") {
		return "", nil, fmt.Errorf("unsupported content type %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", nil, err
	}

	doc.Find(strippedSelector).Remove()
	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Find("body").Text(), " "))

	var links []*url.URL
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		next := base.ResolveReference(ref)
		next.Fragment = ""
		if next.Scheme == "http" || next.Scheme == "https" {
			links = append(links, next)
		}
	})

	return text, links, nil
}

func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host
}
