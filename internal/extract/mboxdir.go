package extract

import (
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-mbox"
)

// Recognized archive-mailbox suffixes. Only .mbx carries a compressed
// variant; a bare .gz or .mbox.gz is not picked up.
var mboxSuffixes = []string{".mbox", ".mbx", ".mbx.gz"}

// MboxDir walks a directory tree of mbox files, gzipped and uncompressed,
// and yields one triple per contained message. Files are visited in
// lexical order within each directory; messages in file order.
type MboxDir struct {
	root  string
	files []string
	log   *slog.Logger

	fileIdx int
	cur     *mboxFile
}

type mboxFile struct {
	path string
	f    *os.File
	gz   *gzip.Reader
	mr   *mbox.Reader
}

func (m *mboxFile) close() error {
	var first error
	if m.gz != nil {
		first = m.gz.Close()
	}
	if err := m.f.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// NewMboxDir builds the extractor for the tree rooted at root. The walk
// happens up front so an unreadable tree fails here, loudly; reading the
// files themselves stays lazy.
func NewMboxDir(root string, log *slog.Logger) (*MboxDir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("mbox dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mbox dir: %q is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if hasMboxSuffix(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mbox dir: walk %q: %w", root, err)
	}

	return &MboxDir{root: root, files: files, log: log}, nil
}

func hasMboxSuffix(name string) bool {
	for _, suf := range mboxSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

func (m *MboxDir) Name() string { return "mboxdir:" + m.root }

func (m *MboxDir) Next() (*Triple, error) {
	for {
		if m.cur == nil {
			if m.fileIdx >= len(m.files) {
				return nil, io.EOF
			}
			path := m.files[m.fileIdx]
			m.fileIdx++
			cur, err := openMboxFile(path)
			if err != nil {
				return nil, err
			}
			m.log.Debug("scanning mbox", "file", path)
			m.cur = cur
		}

		msgR, err := m.cur.mr.NextMessage()
		if err == io.EOF {
			cerr := m.cur.close()
			m.cur = nil
			if cerr != nil {
				return nil, &SkipError{Source: m.Name(), Item: "close", Err: cerr}
			}
			continue
		}
		if err != nil {
			// The mbox reader cannot recover its position after a framing
			// error; give up on the remainder of this file only.
			path := m.cur.path
			_ = m.cur.close()
			m.cur = nil
			return nil, &SkipError{Source: m.Name(), Item: path, Err: err}
		}

		trip, err := readTriple(msgR)
		if err != nil {
			return nil, &SkipError{Source: m.Name(), Item: m.cur.path, Err: err}
		}
		return trip, nil
	}
}

func (m *MboxDir) Close() error {
	if m.cur == nil {
		return nil
	}
	err := m.cur.close()
	m.cur = nil
	return err
}

// openMboxFile opens path for mbox reading, transparently decompressing
// .gz files. Failure to open is structural: the caller aborts.
func openMboxFile(path string) (*mboxFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mbox: %w", err)
	}
	cur := &mboxFile{path: path, f: f}

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip mbox %q: %w", path, err)
		}
		cur.gz = gz
		r = gz
	}

	cur.mr = mbox.NewReader(r)
	return cur, nil
}
