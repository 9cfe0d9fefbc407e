package stwfetch

import "context"

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs listed in the site's sitemap, checking the
	// conventional /sitemap.xml and /sitemap_index.xml locations. Sitemap
	// indexes are resolved recursively. Returns ENOTFOUND if the site
	// publishes no sitemap at either location.
	DiscoverURLs(ctx context.Context, siteURL string) ([]string, error)
}
