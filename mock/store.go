package mock

import (
	"github.com/fwojciec/stwfetch"
)

var _ stwfetch.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of stwfetch.DocumentStore.
type DocumentStore struct {
	SaveFn func(doc *stwfetch.Document, body []byte) error
}

func (s *DocumentStore) Save(doc *stwfetch.Document, body []byte) error {
	return s.SaveFn(doc, body)
}
