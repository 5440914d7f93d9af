package store

import (
	"fmt"
	"strings"

	"prodtrack/internal/model"
)

// ListBlacklist returns all ignore patterns, oldest first.
func (s *Store) ListBlacklist() ([]*model.BlacklistPattern, error) {
	rows, err := s.db.Query(`SELECT id, pattern, created_at FROM blacklist ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []*model.BlacklistPattern
	for rows.Next() {
		p := &model.BlacklistPattern{}
		if err := rows.Scan(&p.ID, &p.Pattern, &p.CreatedAt); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, rows.Err()
}

// BlacklistSnapshot returns just the pattern strings, for handing to an
// import run. The returned slice is independent of later edits.
func (s *Store) BlacklistSnapshot() ([]string, error) {
	patterns, err := s.ListBlacklist()
	if err != nil {
		return nil, err
	}
	snapshot := make([]string, 0, len(patterns))
	for _, p := range patterns {
		snapshot = append(snapshot, p.Pattern)
	}
	return snapshot, nil
}

// AddBlacklistPattern stores a new ignore pattern.
func (s *Store) AddBlacklistPattern(pattern string) (*model.BlacklistPattern, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, fmt.Errorf("empty blacklist pattern")
	}

	res, err := s.db.Exec(`INSERT INTO blacklist (pattern) VALUES (?)`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to insert blacklist pattern: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	p := &model.BlacklistPattern{}
	err = s.db.QueryRow(`SELECT id, pattern, created_at FROM blacklist WHERE id = ?`, id).
		Scan(&p.ID, &p.Pattern, &p.CreatedAt)
	return p, err
}

// DeleteBlacklistPattern removes a pattern by id.
func (s *Store) DeleteBlacklistPattern(id int64) error {
	_, err := s.db.Exec(`DELETE FROM blacklist WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blacklist pattern: %w", err)
	}
	return nil
}
