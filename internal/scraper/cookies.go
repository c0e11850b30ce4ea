package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/utils/logging"

	"github.com/browserutils/kooky"
	"golang.org/x/net/publicsuffix"

	// Use all browsers for Kooky:
	_ "github.com/browserutils/kooky/browser/all"
)

// CookieManager holds cookies for a domain.
type CookieManager struct {
	mu      sync.RWMutex
	cookies map[string][]*http.Cookie
	log     *logging.Logger
}

// NewCookieManager initializes a new cookie manager instance.
func NewCookieManager(log *logging.Logger) *CookieManager {
	return &CookieManager{
		cookies: make(map[string][]*http.Cookie),
		log:     log,
	}
}

// GetCookies retrieves browser cookies for a given URL.
func (cm *CookieManager) GetCookies(ctx context.Context, u string) ([]*http.Cookie, error) {
	domain, err := baseDomain(u)
	if err != nil {
		return nil, fmt.Errorf("error extracting base domain in cookie grab: %w", err)
	}

	cm.mu.RLock()
	if cookies, ok := cm.cookies[domain]; ok {
		cm.mu.RUnlock()
		return cookies, nil
	}
	cm.mu.RUnlock()

	cookies := cm.loadCookiesForDomain(ctx, domain)

	cm.mu.Lock()
	cm.cookies[domain] = cookies
	cm.mu.Unlock()

	return cookies, nil
}

// ExportCookieFile writes the browser cookies for u into a Netscape
// cookie file at path, for the extractor binary's '--cookies' flag.
// Returns "" (and no error) when there is nothing to export.
func (cm *CookieManager) ExportCookieFile(ctx context.Context, u, path string) (string, error) {
	cookies, err := cm.GetCookies(ctx, u)
	if err != nil {
		return "", err
	}
	if len(cookies) == 0 {
		cm.log.I("No browser cookies found for %q, downloads proceed without", u)
		return "", nil
	}

	if err := saveCookiesToFile(cookies, path); err != nil {
		return "", fmt.Errorf("failed to write cookie file %q: %w", path, err)
	}
	cm.log.D(1, "Saved %d cookies to file %s", len(cookies), path)
	return path, nil
}

// loadCookiesForDomain loads the cookies associated with a particular domain.
func (cm *CookieManager) loadCookiesForDomain(ctx context.Context, domain string) []*http.Cookie {
	kookyCookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.Domain(domain))
	if err != nil {
		cm.log.D(2, "Failed reading cookies: %v", err)
		return nil
	}

	if len(kookyCookies) > 0 {
		cm.log.I("Found %d cookies for %s", len(kookyCookies), domain)
		return convertToHTTPCookies(kookyCookies)
	}

	cm.log.I("No cookies found for %s", domain)
	return nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
			Secure:  c.Secure,
		}
	}
	return httpCookies
}

// saveCookiesToFile saves the cookies to a file in Netscape format.
func saveCookiesToFile(cookies []*http.Cookie, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, consts.PermsFile)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Netscape HTTP Cookie File\n# https://curl.haxx.se/rfc/cookie_spec.html\n# This is a generated file! Do not edit.\n\n")

	for _, c := range cookies {
		includeSubdomains := "FALSE"
		if strings.HasPrefix(c.Domain, ".") {
			includeSubdomains = "TRUE"
		}
		secure := "FALSE"
		if c.Secure {
			secure = "TRUE"
		}
		expiry := int64(0)
		if !c.Expires.IsZero() {
			expiry = c.Expires.Unix()
		} else {
			// Session cookies get a year so the extractor accepts them.
			expiry = time.Now().Add(365 * 24 * time.Hour).Unix()
		}
		cookiePath := c.Path
		if cookiePath == "" {
			cookiePath = "/"
		}

		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			c.Domain, includeSubdomains, cookiePath, secure, expiry, c.Name, c.Value)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// baseDomain reduces a URL to its effective registrable domain.
func baseDomain(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("URL %q has no host", u)
	}

	etld, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// IPs and single-label hosts have no eTLD+1, use the host.
		return host, nil
	}
	return etld, nil
}
