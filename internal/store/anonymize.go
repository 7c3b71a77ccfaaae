package store

import "fmt"

// anonymizeStatements rebuilds email_stats with the rowid as the key,
// discarding the message identifiers. Statement order matters: the copy
// must exist before the rename chain, and old_stats must be gone before
// the transaction commits.
var anonymizeStatements = []string{
	`CREATE TABLE copy(id TEXT PRIMARY KEY, date TEXT, subject INT)`,
	`INSERT INTO copy SELECT rowid, date, subject FROM email_stats`,
	`ALTER TABLE email_stats RENAME TO old_stats`,
	`ALTER TABLE copy RENAME TO email_stats`,
	`DROP TABLE old_stats`,
}

// Anonymize replaces every message identifier with its row number and
// reclaims the space the identifiers occupied. This is destructive and
// irreversible; running it again renumbers the already-anonymized rows,
// so run it at most once per dataset if surrogate keys must stay stable.
func (s *Store) Anonymize() error {
	if s.tx != nil {
		return fmt.Errorf("anonymize: a scan batch is still open")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("anonymize: begin tx: %w", err)
	}
	for _, stmt := range anonymizeStatements {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("anonymize: %q: %w", stmt, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("anonymize: commit: %w", err)
	}

	// VACUUM cannot run inside a transaction.
	if _, err := s.db.Exec(`VACUUM`); err != nil {
		return fmt.Errorf("anonymize: vacuum: %w", err)
	}
	return nil
}
