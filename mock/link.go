package mock

import (
	"io"

	"github.com/fwojciec/stwfetch"
)

var _ stwfetch.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of stwfetch.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(r io.Reader, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(r io.Reader, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(r, baseURL)
}
