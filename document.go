package stwfetch

import (
	"context"
	"time"
)

// Document represents one accepted and persisted STW document. The JSON
// tags define the metadata sidecar format written next to each file; the
// untagged remainder is catalog bookkeeping.
type Document struct {
	ID              string    `json:"-"`
	SourceAuthority string    `json:"source_authority"`
	DocumentType    string    `json:"document_type"`
	OriginalURL     string    `json:"original_url"`
	LocalFilePath   string    `json:"local_file_path"`
	DownloadedAt    time.Time `json:"download_timestamp"`
	SizeBytes       int64     `json:"-"`
	ContentHash     string    `json:"-"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.OriginalURL == "" {
		return Errorf(EINVALID, "document original URL required")
	}
	if d.SourceAuthority == "" {
		return Errorf(EINVALID, "document source authority required")
	}
	if d.DocumentType == "" {
		return Errorf(EINVALID, "document type required")
	}
	return nil
}

// DocumentStore persists document bytes together with a metadata sidecar.
// Implementations set LocalFilePath on the document they store.
type DocumentStore interface {
	// Save writes the document body under a filename derived from the
	// document's original URL and writes the metadata sidecar next to it.
	Save(doc *Document, body []byte) error
}

// DocumentService represents a catalog of downloaded documents.
type DocumentService interface {
	// CreateDocument records a new document.
	// Returns ECONFLICT if the original URL is already recorded.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByURL retrieves a document by its original URL.
	// Returns ENOTFOUND if no such document is recorded.
	FindDocumentByURL(ctx context.Context, originalURL string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, most recent first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	SourceAuthority *string
	DocumentType    *string

	Offset int
	Limit  int
}
