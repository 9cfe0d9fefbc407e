package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/stwfetch"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ stwfetch.DocumentService = (*DocumentService)(nil)

// DocumentService implements stwfetch.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// CreateDocument records a new document in the catalog.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *stwfetch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	if doc.DownloadedAt.IsZero() {
		doc.DownloadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_authority, document_type, original_url, local_file_path, size_bytes, content_hash, downloaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceAuthority, doc.DocumentType, doc.OriginalURL, doc.LocalFilePath,
		doc.SizeBytes, doc.ContentHash, doc.DownloadedAt.Format(time.RFC3339))

	var serr *sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode() == sqlite3.CONSTRAINT_UNIQUE {
		return stwfetch.Errorf(stwfetch.ECONFLICT, "document already recorded for %s", doc.OriginalURL)
	}

	return err
}

// FindDocumentByURL retrieves a document by its original URL.
func (s *DocumentService) FindDocumentByURL(ctx context.Context, originalURL string) (*stwfetch.Document, error) {
	var doc stwfetch.Document
	var downloadedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_authority, document_type, original_url, local_file_path, size_bytes, content_hash, downloaded_at
		FROM documents
		WHERE original_url = ?
	`, originalURL).Scan(&doc.ID, &doc.SourceAuthority, &doc.DocumentType, &doc.OriginalURL,
		&doc.LocalFilePath, &doc.SizeBytes, &doc.ContentHash, &downloadedAt)

	if err == sql.ErrNoRows {
		return nil, stwfetch.Errorf(stwfetch.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter, most recent first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter stwfetch.DocumentFilter) ([]*stwfetch.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_authority, document_type, original_url, local_file_path, size_bytes, content_hash, downloaded_at FROM documents WHERE 1=1")

	if filter.SourceAuthority != nil {
		query.WriteString(" AND source_authority = ?")
		args = append(args, *filter.SourceAuthority)
	}
	if filter.DocumentType != nil {
		query.WriteString(" AND document_type = ?")
		args = append(args, *filter.DocumentType)
	}

	query.WriteString(" ORDER BY downloaded_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*stwfetch.Document
	for rows.Next() {
		var doc stwfetch.Document
		var downloadedAt string

		if err := rows.Scan(&doc.ID, &doc.SourceAuthority, &doc.DocumentType, &doc.OriginalURL,
			&doc.LocalFilePath, &doc.SizeBytes, &doc.ContentHash, &downloadedAt); err != nil {
			return nil, err
		}

		if doc.DownloadedAt, err = parseRFC3339(downloadedAt, "downloaded_at"); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
