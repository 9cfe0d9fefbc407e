// Package fs provides filesystem storage for downloaded documents and
// their JSON metadata sidecars.
package fs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/stwfetch"
)

// illegalFilenameChars matches characters stripped from derived filenames.
var illegalFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// DocumentFilename derives a filesystem-safe filename from a document URL:
// the percent-decoded path basename with illegal characters removed and a
// guaranteed .pdf suffix. URLs yielding an empty name get a fallback name
// built from a digest of the URL string, so re-runs over the same URL
// produce the same filename.
func DocumentFilename(rawURL string) string {
	var p string
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}

	name := path.Base(p)
	if name == "." || name == "/" {
		name = ""
	}

	name = illegalFilenameChars.ReplaceAllString(name, "")

	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}

	if name == ".pdf" {
		name = fmt.Sprintf("document_%x.pdf", xxhash.Sum64String(rawURL))
	}

	return name
}

// Ensure Store implements stwfetch.DocumentStore at compile time.
var _ stwfetch.DocumentStore = (*Store)(nil)

// Store writes one file per accepted document plus a JSON metadata record
// keyed by the same base filename: <name>.pdf in the documents directory,
// <name>.json in the metadata directory.
type Store struct {
	docsDir string
	metaDir string
}

// NewStore creates a Store writing documents to docsDir and metadata
// sidecars to metaDir.
func NewStore(docsDir, metaDir string) *Store {
	return &Store{
		docsDir: docsDir,
		metaDir: metaDir,
	}
}

// Save writes the document bytes and metadata sidecar, creating the target
// directories as needed, and sets the document's LocalFilePath to the
// written file. Both writes go through a temp file and rename so a crash
// never leaves a partial file at the final path.
func (s *Store) Save(doc *stwfetch.Document, body []byte) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.docsDir, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(s.metaDir, 0755); err != nil {
		return err
	}

	filename := DocumentFilename(doc.OriginalURL)

	docPath := filepath.Join(s.docsDir, filename)
	if err := writeFileAtomic(docPath, body); err != nil {
		return err
	}
	doc.LocalFilePath = docPath

	meta, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	metaName := strings.TrimSuffix(filename, ".pdf") + ".json"
	return writeFileAtomic(filepath.Join(s.metaDir, metaName), meta)
}

// writeFileAtomic writes to path.tmp and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
