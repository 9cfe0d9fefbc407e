// Package goquery extracts outbound links from HTML pages.
package goquery

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/stwfetch"
	"golang.org/x/net/html/charset"
)

var _ stwfetch.LinkExtractor = (*Extractor)(nil)

// Extractor parses anchor elements from HTML and resolves each href against
// the page URL. Admission decisions (domain scope, document shape, page
// keywords) belong to the caller; the extractor only normalizes.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns the absolute form of every anchor href in document
// order. Fragments are stripped, duplicates and self-references are dropped,
// and non-HTTP schemes (javascript:, mailto:) are skipped. Pages in legacy
// encodings are decoded by sniffing the document's charset.
func (e *Extractor) ExtractLinks(r io.Reader, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, stwfetch.Errorf(stwfetch.EINVALID, "invalid base URL: %v", err)
	}

	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, stwfetch.Errorf(stwfetch.EINVALID, "failed to detect charset: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, stwfetch.Errorf(stwfetch.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs so duplicates keep their first document position.
	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = "" // Strip fragment for deduplication

	// Filter self-referential links (e.g., anchor-only links pointing to
	// same page). Compare against the base URL with its fragment stripped.
	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
