package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Maildir yields one triple per message file in a single maildir folder.
// Messages in new/ are read after cur/, each in directory listing order.
// Subfolders (.Foo style) are not traversed; point a separate extractor at
// them if needed.
type Maildir struct {
	root  string
	files []string
	log   *slog.Logger
	idx   int
}

// NewMaildir builds the extractor for one maildir folder. The folder must
// contain at least a cur/ and new/ subdirectory; anything else fails here.
func NewMaildir(root string, log *slog.Logger) (*Maildir, error) {
	var files []string
	for _, sub := range []string{"cur", "new"} {
		dir := filepath.Join(root, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("maildir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			// Maildir delivery temp files never hold complete messages.
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	log.Debug("scanning maildir", "path", root, "messages", len(files))
	return &Maildir{root: root, files: files, log: log}, nil
}

func (m *Maildir) Name() string { return "maildir:" + m.root }

func (m *Maildir) Next() (*Triple, error) {
	for m.idx < len(m.files) {
		path := m.files[m.idx]
		m.idx++

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open maildir message %q: %w", path, err)
		}
		trip, err := readTriple(f)
		f.Close()
		if err != nil {
			return nil, &SkipError{Source: m.Name(), Item: path, Err: err}
		}
		return trip, nil
	}
	return nil, io.EOF
}

func (m *Maildir) Close() error { return nil }
