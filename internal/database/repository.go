package database

import (
	"database/sql"
	"fmt"

	"realmlauncher/models"
)

const defaultHistoryLimit = 50

// StatusRepository stores reachability probe history.
type StatusRepository struct {
	conn *sql.DB
}

// NewStatusRepository creates a repository over an open connection.
func NewStatusRepository(conn *sql.DB) *StatusRepository {
	return &StatusRepository{conn: conn}
}

// Record inserts one probe result.
func (r *StatusRepository) Record(check models.StatusCheck) error {
	_, err := r.conn.Exec(
		`INSERT INTO status_checks (server_id, host, port, online, latency_ms, checked_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		check.ServerID, check.Host, check.Port, check.Online, check.LatencyMS, check.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

// Recent returns up to limit checks for the server, newest first.
func (r *StatusRepository) Recent(serverID string, limit int) ([]models.StatusCheck, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := r.conn.Query(
		`SELECT id, server_id, host, port, online, latency_ms, checked_at
		 FROM status_checks
		 WHERE server_id = ?
		 ORDER BY checked_at DESC, id DESC
		 LIMIT ?`,
		serverID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query status checks: %w", err)
	}
	defer rows.Close()

	checks := []models.StatusCheck{}
	for rows.Next() {
		var check models.StatusCheck
		if err := rows.Scan(&check.ID, &check.ServerID, &check.Host, &check.Port,
			&check.Online, &check.LatencyMS, &check.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan status check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status checks: %w", err)
	}
	return checks, nil
}
