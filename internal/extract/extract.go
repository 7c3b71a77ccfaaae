// Package extract produces raw (message-id, subject, date) header triples
// from heterogeneous local mail corpora.
//
// Every extractor satisfies the same pull contract: Next returns one triple
// at a time and io.EOF when the source is drained. A triple field that the
// underlying message simply does not carry is nil, never an error. Errors
// from Next come in two tiers: a *SkipError marks one unreadable message or
// file inside an otherwise-good source and the extractor remains usable;
// any other error is structural and the caller should abort.
package extract

import (
	"errors"
	"fmt"
	"io"
)

// Triple is the raw header triple yielded by an extractor. Fields are nil
// when the source message lacks the corresponding header. No format or
// uniqueness guarantees are made at this stage.
type Triple struct {
	MessageID *string
	Subject   *string
	Date      *string
}

// Source is a lazy, finite, non-restartable sequence of header triples.
type Source interface {
	// Name identifies the source in logs (e.g. "mboxdir:/path").
	Name() string

	// Next returns the next triple, io.EOF at end of sequence, a
	// *SkipError for a record-level failure, or any other error for a
	// structural failure.
	Next() (*Triple, error)

	// Close releases any underlying resources. Safe to call after io.EOF.
	Close() error
}

// SkipError marks a record-level failure: one corrupt message or file
// inside an otherwise-readable source. The extractor that returned it can
// still be pulled for further triples.
type SkipError struct {
	Source string // source name
	Item   string // file path or message position within the source
	Err    error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("%s: skip %s: %v", e.Source, e.Item, e.Err)
}

func (e *SkipError) Unwrap() error { return e.Err }

// IsSkip reports whether err is (or wraps) a record-level SkipError.
func IsSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}

// Concat composes extractor sequences into one logical sequence. Each
// input is drained fully, in argument order, before the next one is
// touched; there is no interleaving or buffering.
func Concat(sources ...Source) Source {
	return &concatSource{sources: sources}
}

type concatSource struct {
	sources []Source
	idx     int
}

func (c *concatSource) Name() string {
	if c.idx < len(c.sources) {
		return c.sources[c.idx].Name()
	}
	return "concat"
}

func (c *concatSource) Next() (*Triple, error) {
	for c.idx < len(c.sources) {
		t, err := c.sources[c.idx].Next()
		if err == io.EOF {
			// Drained; release it before moving on so at most one
			// source holds open files at a time.
			name := c.sources[c.idx].Name()
			cerr := c.sources[c.idx].Close()
			c.idx++
			if cerr != nil {
				return nil, &SkipError{Source: name, Item: "close", Err: cerr}
			}
			continue
		}
		return t, err
	}
	return nil, io.EOF
}

func (c *concatSource) Close() error {
	var first error
	for ; c.idx < len(c.sources); c.idx++ {
		if err := c.sources[c.idx].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// str returns a pointer to s. Used when building triples from header maps.
func str(s string) *string { return &s }
