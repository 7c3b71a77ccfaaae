package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/subjscan/subjscan/internal/extract"
	"github.com/subjscan/subjscan/internal/store"
)

const defaultCommitInterval = 1000

// Options controls one pipeline run.
type Options struct {
	// Bounds is the inclusive plausible-date window; zero value means
	// DefaultBounds.
	Bounds Bounds

	// CommitInterval is how many emitted records sit between commits.
	// If zero, 1000 is used.
	CommitInterval int
}

// Summary is the running scan summary: process-local counters reset each
// run, used for progress lines and the end-of-run report.
type Summary struct {
	Emitted      int64 // records that passed normalization
	Inserted     int64 // records actually written (not duplicates)
	MissingField int64
	BadDate      int64
	OutOfRange   int64
	ReadErrors   int64 // record-level extractor failures

	Earliest string // min date seen among emitted records
	Latest   string // max date seen among emitted records
}

func (s *Summary) recordSkip(reason SkipReason) {
	switch reason {
	case SkipMissingField:
		s.MissingField++
	case SkipBadDate:
		s.BadDate++
	case SkipDateOutOfRange:
		s.OutOfRange++
	}
}

// Skipped returns the total number of skipped records.
func (s *Summary) Skipped() int64 {
	return s.MissingField + s.BadDate + s.OutOfRange + s.ReadErrors
}

// Run pulls triples from src one at a time, normalizes them, and inserts
// the survivors into st, committing every CommitInterval emissions and
// once more at end of stream. Record-level failures are logged and
// skipped; structural failures abort with whatever was committed so far.
//
// On context cancellation the pending batch is committed before returning,
// so an interrupted run keeps everything it had already scanned.
func Run(ctx context.Context, src extract.Source, st *store.Store, opts Options, log *slog.Logger) (*Summary, error) {
	interval := opts.CommitInterval
	if interval <= 0 {
		interval = defaultCommitInterval
	}
	bounds := opts.Bounds
	if bounds == (Bounds{}) {
		bounds = DefaultBounds()
	}

	summary := &Summary{}

	for {
		if err := ctx.Err(); err != nil {
			if cerr := st.Commit(); cerr != nil {
				return summary, cerr
			}
			return summary, err
		}

		trip, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if extract.IsSkip(err) {
				summary.ReadErrors++
				log.Warn("skipping unreadable record", "error", err)
				continue
			}
			return summary, fmt.Errorf("read %s: %w", src.Name(), err)
		}

		out := Normalize(trip, bounds)
		if out.Record == nil {
			summary.recordSkip(out.Reason)
			log.Debug("skipping record", "reason", out.Reason.String())
			continue
		}
		rec := out.Record

		inserted, err := st.InsertStat(rec.ID, rec.Date, rec.SubjectLength)
		if err != nil {
			// A failed insert drops this one record, never the run.
			summary.ReadErrors++
			log.Warn("skipping record after insert failure", "id", rec.ID, "error", err)
			continue
		}
		if inserted {
			summary.Inserted++
		}

		summary.Emitted++
		if summary.Earliest == "" || rec.Date < summary.Earliest {
			summary.Earliest = rec.Date
		}
		if rec.Date > summary.Latest {
			summary.Latest = rec.Date
		}

		if summary.Emitted%int64(interval) == 0 {
			log.Info("scan progress, committing",
				"scanned", summary.Emitted,
				"from", summary.Earliest,
				"to", summary.Latest,
			)
			if err := st.Commit(); err != nil {
				return summary, err
			}
		}
	}

	if err := st.Commit(); err != nil {
		return summary, err
	}
	return summary, nil
}
