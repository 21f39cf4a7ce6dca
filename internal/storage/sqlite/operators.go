package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/josemedina1/Papafactory/internal/models"
	"github.com/josemedina1/Papafactory/internal/storage"
)

// CreateOperator persists a new operator account.
func (s *SQLiteStore) CreateOperator(ctx context.Context, op *models.Operator) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO operators (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		op.ID, op.Username, op.PasswordHash, op.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert operator: %w", err)
	}
	return nil
}

// GetOperatorByUsername retrieves an operator for login.
func (s *SQLiteStore) GetOperatorByUsername(ctx context.Context, username string) (*models.Operator, error) {
	op := &models.Operator{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM operators WHERE username = ?",
		username,
	).Scan(&op.ID, &op.Username, &op.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("operator %s: %w", username, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	op.CreatedAt = time.Unix(createdAt, 0)
	return op, nil
}
