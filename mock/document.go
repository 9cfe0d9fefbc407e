package mock

import (
	"context"

	"github.com/fwojciec/stwfetch"
)

var _ stwfetch.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of stwfetch.DocumentService.
type DocumentService struct {
	CreateDocumentFn    func(ctx context.Context, doc *stwfetch.Document) error
	FindDocumentByURLFn func(ctx context.Context, url string) (*stwfetch.Document, error)
	FindDocumentsFn     func(ctx context.Context, filter stwfetch.DocumentFilter) ([]*stwfetch.Document, error)
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *stwfetch.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByURL(ctx context.Context, url string) (*stwfetch.Document, error) {
	return s.FindDocumentByURLFn(ctx, url)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter stwfetch.DocumentFilter) ([]*stwfetch.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}
