package store

import (
	"fmt"

	"prodtrack/internal/model"
)

// CreateImportLog records the start of an import run and returns the
// log row id.
func (s *Store) CreateImportLog(runID, filename string, fileSize int64) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (run_id, filename, file_size, status)
		VALUES (?, ?, ?, 'processing')
	`, runID, filename, fileSize)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// FinishImportLog completes an import log row.
func (s *Store) FinishImportLog(id int64, objectNumber, status, errorMessage string, products, parts int) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			object_number = ?,
			status = ?,
			error_message = ?,
			products = ?,
			parts = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, objectNumber, status, errorMessage, products, parts, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ListImportLogs returns recent import runs, newest first.
func (s *Store) ListImportLogs(limit int) ([]*model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, run_id, filename, file_size, object_number, status,
		       error_message, products, parts, created_at, completed_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*model.ImportLog
	for rows.Next() {
		l := &model.ImportLog{}
		if err := rows.Scan(
			&l.ID, &l.RunID, &l.Filename, &l.FileSize, &l.ObjectNumber, &l.Status,
			&l.ErrorMessage, &l.Products, &l.Parts, &l.CreatedAt, &l.CompletedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
