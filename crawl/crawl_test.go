package crawl_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/stwfetch"
	"github.com/fwojciec/stwfetch/crawl"
	"github.com/fwojciec/stwfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for an unparseable seed URL", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Config: crawl.Config{SeedURL: "://bad"},
		}

		_, err := c.Run(context.Background())
		assert.Equal(t, stwfetch.EINVALID, stwfetch.ErrorCode(err))
	})

	t.Run("returns EINVALID for a seed URL without a host", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Config: crawl.Config{SeedURL: "/standard-treatment-workflows-stws"},
		}

		_, err := c.Run(context.Background())
		assert.Equal(t, stwfetch.EINVALID, stwfetch.ErrorCode(err))
	})

	t.Run("downloads a relevant document linked from the seed page", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/standard-treatment-workflows-stws": htmlPage(
				"https://example.com/STWs/diabetes.pdf",
				"https://other.org/elsewhere",
				"https://example.com/about-us",
			),
			"https://example.com/STWs/diabetes.pdf": pdfPage(80000),
		})

		var savedDoc *stwfetch.Document
		var savedBody []byte
		var cataloged *stwfetch.Document

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store: &mock.DocumentStore{
				SaveFn: func(doc *stwfetch.Document, body []byte) error {
					doc.LocalFilePath = "data/downloads/diabetes.pdf"
					savedDoc = doc
					savedBody = body
					return nil
				},
			},
			Documents: &mock.DocumentService{
				CreateDocumentFn: func(_ context.Context, doc *stwfetch.Document) error {
					cataloged = doc
					return nil
				},
				FindDocumentByURLFn: func(_ context.Context, url string) (*stwfetch.Document, error) {
					return nil, stwfetch.Errorf(stwfetch.ENOTFOUND, "document not found")
				},
			},
			Config: crawl.Config{
				SeedURL: "https://example.com/standard-treatment-workflows-stws",
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, int64(80000), result.Bytes)

		// The out-of-domain and non-promising URLs were never requested.
		assert.Equal(t, 1, site.fetchCount("https://example.com/STWs/diabetes.pdf"))
		assert.Equal(t, 0, site.fetchCount("https://other.org/elsewhere"))
		assert.Equal(t, 0, site.fetchCount("https://example.com/about-us"))

		require.NotNil(t, savedDoc)
		assert.Equal(t, "ICMR", savedDoc.SourceAuthority)
		assert.Equal(t, "Standard Treatment Workflow", savedDoc.DocumentType)
		assert.Equal(t, "https://example.com/STWs/diabetes.pdf", savedDoc.OriginalURL)
		assert.False(t, savedDoc.DownloadedAt.IsZero())
		assert.Equal(t, int64(80000), savedDoc.SizeBytes)
		assert.NotEmpty(t, savedDoc.ContentHash)
		assert.Len(t, savedBody, 80000)

		require.NotNil(t, cataloged)
		assert.Equal(t, "data/downloads/diabetes.pdf", cataloged.LocalFilePath)
	})

	t.Run("www seed admits bare-domain links", func(t *testing.T) {
		t.Parallel()

		// Seed on the www host; the document link uses the bare domain.
		site := newFakeSite(map[string]*fakePage{
			"https://www.example.com/stw": htmlPage(
				"https://example.com/STWs/doc.pdf",
				"https://notexample.com/STWs/other.pdf",
			),
			"https://example.com/STWs/doc.pdf": pdfPage(80000),
		})

		var saves int
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Config:  crawl.Config{SeedURL: "https://www.example.com/stw"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, saves)
		assert.Equal(t, 1, site.fetchCount("https://example.com/STWs/doc.pdf"))
		assert.Equal(t, 0, site.fetchCount("https://notexample.com/STWs/other.pdf"))
	})

	t.Run("processes each URL at most once", func(t *testing.T) {
		t.Parallel()

		// Two pages link to each other and both link the same document.
		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/a": htmlPage(
				"https://example.com/stw/b",
				"https://example.com/STWs/doc.pdf",
			),
			"https://example.com/stw/b": htmlPage(
				"https://example.com/stw/a",
				"https://example.com/STWs/doc.pdf",
			),
			"https://example.com/STWs/doc.pdf": pdfPage(80000),
		})

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Config:  crawl.Config{SeedURL: "https://example.com/stw/a"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Pages)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, site.fetchCount("https://example.com/stw/a"))
		assert.Equal(t, 1, site.fetchCount("https://example.com/stw/b"))
		assert.Equal(t, 1, site.fetchCount("https://example.com/STWs/doc.pdf"))
	})

	t.Run("processes URLs in FIFO discovery order", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw": htmlPage(
				"https://example.com/stw/a",
				"https://example.com/stw/b",
				"https://example.com/stw/c",
			),
			"https://example.com/stw/a": htmlPage(),
			"https://example.com/stw/b": htmlPage(),
			"https://example.com/stw/c": htmlPage(),
		})

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Config:  crawl.Config{SeedURL: "https://example.com/stw"},
		}

		_, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/stw",
			"https://example.com/stw/a",
			"https://example.com/stw/b",
			"https://example.com/stw/c",
		}, site.fetchOrder())
	})

	t.Run("stops expanding pages at the page ceiling", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/1": htmlPage("https://example.com/stw/2"),
			"https://example.com/stw/2": htmlPage("https://example.com/stw/3"),
			"https://example.com/stw/3": htmlPage("https://example.com/stw/4"),
			"https://example.com/stw/4": htmlPage(),
		})

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Config: crawl.Config{
				SeedURL:  "https://example.com/stw/1",
				MaxPages: 2,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Pages)
		assert.Equal(t, 0, site.fetchCount("https://example.com/stw/3"))
	})

	t.Run("documents do not count toward the page ceiling", func(t *testing.T) {
		t.Parallel()

		// Three documents queue ahead of the second page; all of them are
		// downloaded even though the page ceiling is two.
		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/a.pdf",
				"https://example.com/STWs/b.pdf",
				"https://example.com/STWs/c.pdf",
				"https://example.com/stw/more",
			),
			"https://example.com/stw/more":   htmlPage(),
			"https://example.com/STWs/a.pdf": pdfPage(80000),
			"https://example.com/STWs/b.pdf": pdfPage(80000),
			"https://example.com/STWs/c.pdf": pdfPage(80000),
		})

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Config: crawl.Config{
				SeedURL:  "https://example.com/stw/index",
				MaxPages: 2,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Pages)
		assert.Equal(t, 3, result.Saved)
	})

	t.Run("rejects an irrelevant document after fetching it", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/misc/report.pdf",
			),
			"https://example.com/misc/report.pdf": pdfPage(80000),
		})

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Config:  crawl.Config{SeedURL: "https://example.com/stw/index"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		// The document is fetched so its content type and size can be
		// inspected, but the topical filter discards it.
		assert.Equal(t, 1, site.fetchCount("https://example.com/misc/report.pdf"))
		assert.Equal(t, 1, result.Rejected)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 0, saves)
	})

	t.Run("rejects a document below the minimum size before reading the body", func(t *testing.T) {
		t.Parallel()

		bodyRead := false
		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/stub.pdf",
			),
		})
		site.pages["https://example.com/STWs/stub.pdf"] = &fakePage{
			result: func(url string) *stwfetch.FetchResult {
				return &stwfetch.FetchResult{
					URL:           url,
					StatusCode:    http.StatusOK,
					ContentType:   "application/pdf",
					ContentLength: 1024,
					Body: io.NopCloser(funcReader(func(p []byte) (int, error) {
						bodyRead = true
						return 0, io.EOF
					})),
				}
			},
		}

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Config: crawl.Config{
				SeedURL:         "https://example.com/stw/index",
				MinDocumentSize: 51200,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Rejected)
		assert.Equal(t, 0, saves)
		assert.False(t, bodyRead, "declared content length should reject before the body is read")
	})

	t.Run("rejects an undersized document after reading when length is undeclared", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/small.pdf",
			),
		})
		site.pages["https://example.com/STWs/small.pdf"] = &fakePage{
			result: func(url string) *stwfetch.FetchResult {
				return &stwfetch.FetchResult{
					URL:           url,
					StatusCode:    http.StatusOK,
					ContentType:   "application/pdf",
					ContentLength: -1,
					Body:          io.NopCloser(bytes.NewReader(bytes.Repeat([]byte{'%'}, 40000))),
				}
			},
		}

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Config: crawl.Config{
				SeedURL:         "https://example.com/stw/index",
				MinDocumentSize: 51200,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Rejected)
		assert.Equal(t, 0, saves, "no file is written for an undersized document")
	})

	t.Run("rejects a document-shaped URL that serves HTML", func(t *testing.T) {
		t.Parallel()

		extracted := 0
		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/fake.pdf",
			),
		})
		site.pages["https://example.com/STWs/fake.pdf"] = &fakePage{
			result: func(url string) *stwfetch.FetchResult {
				return &stwfetch.FetchResult{
					URL:           url,
					StatusCode:    http.StatusOK,
					ContentType:   "text/html; charset=utf-8",
					ContentLength: 100,
					Body:          io.NopCloser(strings.NewReader("<html></html>")),
				}
			},
		}

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links: &mock.LinkExtractor{
				ExtractLinksFn: func(_ io.Reader, baseURL string) ([]string, error) {
					extracted++
					return site.outlinks[baseURL], nil
				},
			},
			Store:  countingStore(&saves),
			Config: crawl.Config{SeedURL: "https://example.com/stw/index"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		// The URL shape routes it to the document pipeline, which rejects
		// the mismatched content type; the page parser never sees it.
		assert.Equal(t, 1, result.Rejected)
		assert.Equal(t, 0, saves)
		assert.Equal(t, 1, extracted, "only the seed page should reach the link extractor")
	})

	t.Run("routes a page URL serving PDF content to the document pipeline", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/stw/downloads/stw-diabetes",
			),
		})
		site.pages["https://example.com/stw/downloads/stw-diabetes"] = &fakePage{
			result: func(url string) *stwfetch.FetchResult {
				return pdfPage(80000).result(url)
			},
		}

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Config:  crawl.Config{SeedURL: "https://example.com/stw/index"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages, "the PDF response should not count as a page")
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, saves)
	})

	t.Run("counts fetch failures and continues the crawl", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/stw/broken",
				"https://example.com/stw/missing",
				"https://example.com/stw/fine",
			),
			"https://example.com/stw/fine": htmlPage(),
		})
		site.pages["https://example.com/stw/broken"] = &fakePage{
			err: io.ErrUnexpectedEOF,
		}
		site.pages["https://example.com/stw/missing"] = &fakePage{
			result: func(url string) *stwfetch.FetchResult {
				return &stwfetch.FetchResult{
					URL:         url,
					StatusCode:  http.StatusNotFound,
					ContentType: "text/html",
					Body:        io.NopCloser(strings.NewReader("not found")),
				}
			},
		}

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Config:  crawl.Config{SeedURL: "https://example.com/stw/index"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Failed)
		assert.Equal(t, 2, result.Pages, "seed and the healthy page")
		assert.Equal(t, 1, site.fetchCount("https://example.com/stw/broken"), "failed URLs are not retried")
		assert.Equal(t, 1, site.fetchCount("https://example.com/stw/fine"))
	})

	t.Run("skips documents already in the catalog", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/known.pdf",
			),
			"https://example.com/STWs/known.pdf": pdfPage(80000),
		})

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Documents: &mock.DocumentService{
				FindDocumentByURLFn: func(_ context.Context, url string) (*stwfetch.Document, error) {
					return &stwfetch.Document{OriginalURL: url}, nil
				},
			},
			Config: crawl.Config{SeedURL: "https://example.com/stw/index"},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 0, site.fetchCount("https://example.com/STWs/known.pdf"), "cataloged documents are not refetched")
	})

	t.Run("refetch overrides the catalog skip", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/known.pdf",
			),
			"https://example.com/STWs/known.pdf": pdfPage(80000),
		})

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Documents: &mock.DocumentService{
				FindDocumentByURLFn: func(_ context.Context, url string) (*stwfetch.Document, error) {
					return &stwfetch.Document{OriginalURL: url}, nil
				},
				CreateDocumentFn: func(_ context.Context, doc *stwfetch.Document) error {
					return stwfetch.Errorf(stwfetch.ECONFLICT, "document already exists")
				},
			},
			Config: crawl.Config{
				SeedURL: "https://example.com/stw/index",
				Refetch: true,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved, "catalog conflict on refetch is tolerated")
		assert.Equal(t, 1, saves)
		assert.Equal(t, 1, site.fetchCount("https://example.com/STWs/known.pdf"))
	})

	t.Run("waits on the limiter before every request", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/doc.pdf",
			),
			"https://example.com/STWs/doc.pdf": pdfPage(80000),
		})

		var waits []string
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					waits = append(waits, domain)
					return nil
				},
			},
			Config: crawl.Config{SeedURL: "https://example.com/stw/index"},
		}

		_, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "example.com"}, waits)
	})

	t.Run("sitemap pass downloads discovered documents before the crawl", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(
				"https://example.com/STWs/a.pdf",
			),
			"https://example.com/STWs/a.pdf": pdfPage(80000),
			"https://example.com/STWs/b.pdf": pdfPage(80000),
		})

		saves := 0
		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(&saves),
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, siteURL string) ([]string, error) {
					assert.Equal(t, "https://example.com", siteURL)
					return []string{
						"https://example.com/STWs/a.pdf",
						"https://example.com/STWs/b.pdf",
						"https://example.com/stw/page",
						"https://other.org/STWs/c.pdf",
					}, nil
				},
			},
			Config: crawl.Config{
				SeedURL:    "https://example.com/stw/index",
				UseSitemap: true,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 2, saves)
		// Sitemap already handled a.pdf; the BFS pass must not fetch it again.
		assert.Equal(t, 1, site.fetchCount("https://example.com/STWs/a.pdf"))
		assert.Equal(t, 0, site.fetchCount("https://other.org/STWs/c.pdf"))
		assert.Equal(t, 0, site.fetchCount("https://example.com/stw/page"), "non-document sitemap URLs are ignored")
	})

	t.Run("continues the crawl when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite(map[string]*fakePage{
			"https://example.com/stw/index": htmlPage(),
		})

		c := &crawl.Crawler{
			Fetcher: site.fetcher(),
			Links:   site.links(),
			Store:   countingStore(nil),
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, _ string) ([]string, error) {
					return nil, stwfetch.Errorf(stwfetch.ENOTFOUND, "no sitemap found")
				},
			},
			Config: crawl.Config{
				SeedURL:    "https://example.com/stw/index",
				UseSitemap: true,
			},
		}

		result, err := c.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pages)
	})
}

// fakePage describes one URL on a fake site: either a canned error or a
// fresh FetchResult per request, plus the outbound links its HTML carries.
type fakePage struct {
	result func(url string) *stwfetch.FetchResult
	err    error
	links  []string
}

// fakeSite serves canned responses and records every fetch. The outlinks
// map drives the link extractor, bypassing HTML parsing in engine tests.
type fakeSite struct {
	mu       sync.Mutex
	pages    map[string]*fakePage
	outlinks map[string][]string
	fetched  []string
}

func newFakeSite(pages map[string]*fakePage) *fakeSite {
	s := &fakeSite{
		pages:    pages,
		outlinks: make(map[string][]string),
	}
	for url, p := range pages {
		s.outlinks[url] = p.links
	}
	return s
}

func (s *fakeSite) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*stwfetch.FetchResult, error) {
			s.mu.Lock()
			s.fetched = append(s.fetched, url)
			s.mu.Unlock()

			p, ok := s.pages[url]
			if !ok {
				return &stwfetch.FetchResult{
					URL:         url,
					StatusCode:  http.StatusNotFound,
					ContentType: "text/html",
					Body:        io.NopCloser(strings.NewReader("not found")),
				}, nil
			}
			if p.err != nil {
				return nil, p.err
			}
			return p.result(url), nil
		},
	}
}

func (s *fakeSite) links() *mock.LinkExtractor {
	return &mock.LinkExtractor{
		ExtractLinksFn: func(_ io.Reader, baseURL string) ([]string, error) {
			return s.outlinks[baseURL], nil
		},
	}
}

func (s *fakeSite) fetchCount(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.fetched {
		if f == url {
			n++
		}
	}
	return n
}

func (s *fakeSite) fetchOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

func htmlPage(links ...string) *fakePage {
	return &fakePage{
		links: links,
		result: func(url string) *stwfetch.FetchResult {
			return &stwfetch.FetchResult{
				URL:           url,
				StatusCode:    http.StatusOK,
				ContentType:   "text/html; charset=utf-8",
				ContentLength: -1,
				Body:          io.NopCloser(strings.NewReader("<html></html>")),
			}
		},
	}
}

func pdfPage(size int) *fakePage {
	return &fakePage{
		result: func(url string) *stwfetch.FetchResult {
			return &stwfetch.FetchResult{
				URL:           url,
				StatusCode:    http.StatusOK,
				ContentType:   "application/pdf",
				ContentLength: int64(size),
				Body:          io.NopCloser(bytes.NewReader(bytes.Repeat([]byte{'%'}, size))),
			}
		},
	}
}

// countingStore returns a store that accepts every save, optionally
// counting them. Safe for the concurrent sitemap download pool.
func countingStore(saves *int) *mock.DocumentStore {
	var mu sync.Mutex
	return &mock.DocumentStore{
		SaveFn: func(doc *stwfetch.Document, body []byte) error {
			doc.LocalFilePath = "data/downloads/test.pdf"
			if saves != nil {
				mu.Lock()
				*saves++
				mu.Unlock()
			}
			return nil
		},
	}
}

type funcReader func(p []byte) (int, error)

func (f funcReader) Read(p []byte) (int, error) { return f(p) }
