// Package scraper collects candidate audio links from web pages and
// exports browser cookies for the extractor.
package scraper

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"sort"
	"strings"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/utils/logging"

	"github.com/gocolly/colly"
	"golang.org/x/net/publicsuffix"
)

// Scraper handles web page link collection.
type Scraper struct {
	collector     *colly.Collector
	cookieManager *CookieManager
	log           *logging.Logger
}

// New returns a new Scraper instance.
func New(log *logging.Logger) *Scraper {
	return &Scraper{
		collector:     colly.NewCollector(),
		cookieManager: NewCookieManager(log),
		log:           log,
	}
}

// CollectLinks visits pageURL and returns every absolute http(s)
// anchor target on the page, optionally narrowed to those containing
// match. Results are sorted for stable output.
func (s *Scraper) CollectLinks(ctx context.Context, pageURL, match string) ([]string, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to build cookie jar: %w", err)
	}
	s.collector.SetCookieJar(jar)

	if cookies, err := s.cookieManager.GetCookies(ctx, pageURL); err == nil && len(cookies) > 0 {
		if err := s.collector.SetCookies(pageURL, cookies); err != nil {
			s.log.W("Failed to set %d cookies for %q: %v", len(cookies), pageURL, err)
		}
	}

	unique := make(map[string]struct{})
	s.collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if !strings.HasPrefix(link, consts.SchemeHTTP) && !strings.HasPrefix(link, consts.SchemeHTTPS) {
			return
		}
		if match != "" && !strings.Contains(link, match) {
			return
		}
		unique[link] = struct{}{}
	})

	if err := s.collector.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("error visiting webpage %q: %w", pageURL, err)
	}
	s.collector.Wait()

	links := make([]string, 0, len(unique))
	for link := range unique {
		links = append(links, link)
	}
	sort.Strings(links)

	s.log.D(1, "Collected %d candidate links from %q", len(links), pageURL)
	return links, nil
}

// FilterKnown drops candidates already present in known, comparing
// normalized forms so scheme and trailing-slash differences don't slip
// duplicates through.
func FilterKnown(candidates, known []string) []string {
	knownSet := make(map[string]struct{}, len(known))
	for _, u := range known {
		knownSet[normalizeURL(u)] = struct{}{}
	}

	fresh := make([]string, 0, len(candidates))
	for _, u := range candidates {
		if _, ok := knownSet[normalizeURL(u)]; ok {
			continue
		}
		fresh = append(fresh, u)
	}
	return fresh
}

// normalizeURL reduces a URL to a comparison key.
func normalizeURL(u string) string {
	n := strings.TrimSpace(u)
	n = strings.TrimPrefix(n, consts.SchemeHTTPS)
	n = strings.TrimPrefix(n, consts.SchemeHTTP)
	n = strings.TrimPrefix(n, "www.")
	return strings.TrimRight(n, "/")
}
