package store

import (
	"database/sql"
	"fmt"
	"os"
)

// Stats holds table-level statistics for display.
type Stats struct {
	Rows         int64
	Earliest     string
	Latest       string
	DatabaseSize int64
}

// GetStats returns row count, observed date range, and db file size.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM email_stats`).Scan(&stats.Rows); err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	var earliest, latest sql.NullString
	err := s.db.QueryRow(`SELECT MIN(date), MAX(date) FROM email_stats`).Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("date range: %w", err)
	}
	stats.Earliest = earliest.String
	stats.Latest = latest.String

	if info, err := os.Stat(s.dbPath); err == nil {
		stats.DatabaseSize = info.Size()
	}

	return stats, nil
}

// DailyAggregate is one day of the reporting query: how many messages and
// the average subject length.
type DailyAggregate struct {
	Date             string
	Count            int64
	AvgSubjectLength float64
}

// DailyAggregates groups the table by date, ordered ascending. Filtering
// (date window, per-day volume cap) is the report layer's concern.
func (s *Store) DailyAggregates() ([]DailyAggregate, error) {
	rows, err := s.db.Query(
		`SELECT date, COUNT(*), AVG(subject) FROM email_stats GROUP BY date ORDER BY date`,
	)
	if err != nil {
		return nil, fmt.Errorf("daily aggregates: %w", err)
	}
	defer rows.Close()

	var out []DailyAggregate
	for rows.Next() {
		var agg DailyAggregate
		if err := rows.Scan(&agg.Date, &agg.Count, &agg.AvgSubjectLength); err != nil {
			return nil, fmt.Errorf("daily aggregates: scan: %w", err)
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily aggregates: %w", err)
	}
	return out, nil
}
