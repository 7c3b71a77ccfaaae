package extract

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"

	"github.com/subjscan/subjscan/internal/textutil"
)

// Corpus walks a flat research email corpus: a directory tree where every
// regular file, whatever its name, is one message stored in a legacy
// single-byte encoding. Each file is decoded to UTF-8 and parsed; a file
// that fails to decode or parse is skipped on its own, never taking the
// rest of the walk with it.
type Corpus struct {
	root    string
	encName string
	enc     encoding.Encoding // nil when encName == "auto"
	files   []string
	log     *slog.Logger
	idx     int
}

// NewCorpus builds the extractor for the tree rooted at root. encName is
// an IANA charset name, or "auto" to detect per file. An unknown charset
// name or unreadable tree is a configuration error and fails here.
func NewCorpus(root, encName string, log *slog.Logger) (*Corpus, error) {
	var enc encoding.Encoding
	if encName != "auto" {
		enc = textutil.EncodingByName(encName)
		if enc == nil {
			return nil, fmt.Errorf("corpus: unknown encoding %q", encName)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus: %q is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: walk %q: %w", root, err)
	}
	log.Debug("scanning corpus", "path", root, "encoding", encName, "files", len(files))

	return &Corpus{root: root, encName: encName, enc: enc, files: files, log: log}, nil
}

func (c *Corpus) Name() string { return "corpus:" + c.root }

func (c *Corpus) Next() (*Triple, error) {
	if c.idx >= len(c.files) {
		return nil, io.EOF
	}
	path := c.files[c.idx]
	c.idx++

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SkipError{Source: c.Name(), Item: path, Err: err}
	}

	decoded, err := c.decode(data)
	if err != nil {
		return nil, &SkipError{Source: c.Name(), Item: path, Err: err}
	}

	trip, err := readTriple(bytes.NewReader(decoded))
	if err != nil {
		return nil, &SkipError{Source: c.Name(), Item: path, Err: err}
	}
	return trip, nil
}

func (c *Corpus) Close() error { return nil }

// decode converts data from the configured (or detected) legacy encoding
// to UTF-8. x/text decoders substitute undecodable input instead of
// erroring, so a replacement rune in the output is treated as a decode
// failure: the corpus predates Unicode and cannot legitimately contain one.
func (c *Corpus) decode(data []byte) ([]byte, error) {
	enc := c.enc
	if enc == nil {
		detected, err := textutil.Detect(data)
		if err != nil {
			return nil, err
		}
		enc = detected
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.encName, err)
	}
	if bytes.ContainsRune(decoded, '�') {
		return nil, fmt.Errorf("decode %s: undecodable byte in input", c.encName)
	}
	return decoded, nil
}
