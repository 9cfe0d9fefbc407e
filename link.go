package stwfetch

import "io"

// LinkExtractor extracts outbound links from an HTML page.
type LinkExtractor interface {
	// ExtractLinks parses HTML from r and returns the absolute URLs of all
	// anchor targets in document order, resolved against baseURL with
	// fragments stripped. Malformed anchors are skipped, not fatal.
	ExtractLinks(r io.Reader, baseURL string) ([]string, error)
}
