package stwfetch

import (
	"net/url"
	"path"
	"strings"
)

// Classifier defaults matching the ICMR Standard Treatment Workflows site.
const (
	DefaultDocumentExtension   = ".pdf"
	DefaultDocumentMIMEType    = "application/pdf"
	DefaultRelevantPathSegment = "/stws/"
	DefaultRelevantNameKeyword = "stw"
)

// DefaultPageKeywords marks pages worth expanding during the crawl. The
// keyword match is case-sensitive, so both casings of the STW path segment
// are listed.
var DefaultPageKeywords = []string{
	"standard-treatment-workflows",
	"/stw",
	"/STWs/",
	"guidelines",
}

// Classifier holds the URL admission policy for one crawl. All methods are
// pure functions of the URL string and the configured policy.
type Classifier struct {
	// Domain confines the crawl: hosts equal to it or ending in a "."
	// prefixed form of it are in scope.
	Domain string

	// DocumentExtension identifies candidate documents by URL path suffix.
	DocumentExtension string

	// DocumentMIMEType identifies documents by response content type.
	DocumentMIMEType string

	// RelevantPathSegment admits documents whose path contains it
	// (case-insensitive).
	RelevantPathSegment string

	// RelevantNameKeyword admits documents whose filename contains it
	// (case-insensitive).
	RelevantNameKeyword string

	// PageKeywords admit HTML pages for expansion (case-sensitive).
	PageKeywords []string
}

// NewClassifier returns a Classifier for the given domain with the STW
// defaults for every other field.
func NewClassifier(domain string) *Classifier {
	return &Classifier{
		Domain:              domain,
		DocumentExtension:   DefaultDocumentExtension,
		DocumentMIMEType:    DefaultDocumentMIMEType,
		RelevantPathSegment: DefaultRelevantPathSegment,
		RelevantNameKeyword: DefaultRelevantNameKeyword,
		PageKeywords:        DefaultPageKeywords,
	}
}

// DefaultDomain derives the crawl scope from a seed host: the host
// lower-cased, with a leading "www." label dropped so that a seed on
// www.example.com admits example.com and its other subdomains.
func DefaultDomain(host string) string {
	host = strings.ToLower(host)
	if rest, ok := strings.CutPrefix(host, "www."); ok && strings.Contains(rest, ".") {
		return rest
	}
	return host
}

// InDomain reports whether the URL is inside the crawl scope: scheme must
// be http or https, and the host (port ignored) must equal the configured
// domain, be a subdomain of it, or be empty (a relative reference already
// resolved against the domain).
func (c *Classifier) InDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return true
	}
	domain := strings.ToLower(c.Domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// IsCandidateDocument reports whether the URL path ends with the document
// extension, case-insensitive. Query strings and fragments do not affect
// the check.
func (c *Classifier) IsCandidateDocument(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), c.DocumentExtension)
}

// IsDocumentContentType reports whether a response content type indicates
// the document MIME type. Covers document URLs whose paths lack the
// extension.
func (c *Classifier) IsDocumentContentType(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), c.DocumentMIMEType)
}

// IsRelevantDocument applies the strict topical filter: the URL path must
// contain the relevance segment, or the filename component must contain
// the relevance keyword. Both checks are case-insensitive.
func (c *Classifier) IsRelevantDocument(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	lowerPath := strings.ToLower(u.Path)
	if strings.Contains(lowerPath, strings.ToLower(c.RelevantPathSegment)) {
		return true
	}
	name := strings.ToLower(path.Base(u.Path))
	return strings.Contains(name, strings.ToLower(c.RelevantNameKeyword))
}

// IsPromisingPage reports whether the URL string contains any configured
// page keyword. Pages failing this check are not expanded.
func (c *Classifier) IsPromisingPage(rawURL string) bool {
	for _, kw := range c.PageKeywords {
		if strings.Contains(rawURL, kw) {
			return true
		}
	}
	return false
}
