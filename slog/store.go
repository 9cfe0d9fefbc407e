package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/stwfetch"
)

// Ensure LoggingDocumentStore implements stwfetch.DocumentStore.
var _ stwfetch.DocumentStore = (*LoggingDocumentStore)(nil)

// LoggingDocumentStore wraps a DocumentStore with debug logging.
type LoggingDocumentStore struct {
	next   stwfetch.DocumentStore
	logger *slog.Logger
}

// NewLoggingDocumentStore creates a new LoggingDocumentStore.
func NewLoggingDocumentStore(next stwfetch.DocumentStore, logger *slog.Logger) *LoggingDocumentStore {
	return &LoggingDocumentStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingDocumentStore) Save(doc *stwfetch.Document, body []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save document",
			"url", doc.OriginalURL,
			"path", doc.LocalFilePath,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(doc, body)
}
