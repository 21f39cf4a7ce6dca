package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/josemedina1/Papafactory/internal/ledger"
	"github.com/josemedina1/Papafactory/internal/models"
	"github.com/josemedina1/Papafactory/internal/storage"
)

// AppendOrder records a finalized order with its lines and add-ons in one
// transaction.
func (s *SQLiteStore) AppendOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (number, day, created_at, total, status) VALUES (?, ?, ?, ?, ?)",
		order.Number, ledger.DayKey(order.CreatedAt), order.CreatedAt.Unix(), order.Total, order.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for pos := range order.Lines {
		line := &order.Lines[pos]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_lines
			 (id, order_number, position, product_id, product_name, category, size, size_label, unit_price, currency, quantity, subtotal)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			line.ID, order.Number, pos,
			line.Product.ID, line.Product.Name, line.Product.Category,
			line.Product.Size, line.Product.SizeLabel, line.Product.UnitPrice, line.Product.Currency,
			line.Quantity, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}

		for _, a := range line.AddOns {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO line_add_ons (line_id, name, tier, unit_price, quantity) VALUES (?, ?, ?, ?, ?)",
				line.ID, a.Name, a.Tier, a.UnitPrice, a.Quantity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert add-on: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetOrder retrieves one order by ticket number, including lines and add-ons.
func (s *SQLiteStore) GetOrder(ctx context.Context, number string) (*models.Order, error) {
	order := &models.Order{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT number, created_at, total, status FROM orders WHERE number = ?",
		number,
	).Scan(&order.Number, &createdAt, &order.Total, &order.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", number, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.CreatedAt = time.Unix(createdAt, 0)

	if err := s.loadLines(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the full history, oldest first.
func (s *SQLiteStore) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT number, created_at, total, status FROM orders ORDER BY created_at, number",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var createdAt int64
		if err := rows.Scan(&order.Number, &createdAt, &order.Total, &order.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.CreatedAt = time.Unix(createdAt, 0)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for _, order := range orders {
		if err := s.loadLines(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// DayStats aggregates the orders of one calendar day.
func (s *SQLiteStore) DayStats(ctx context.Context, t time.Time) (*models.DayStats, error) {
	stats := &models.DayStats{}
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE day = ?",
		ledger.DayKey(t),
	).Scan(&stats.Orders, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate day stats: %w", err)
	}
	if stats.Orders > 0 {
		stats.AverageTicket = stats.Revenue / int64(stats.Orders)
	}
	return stats, nil
}

func (s *SQLiteStore) loadLines(ctx context.Context, order *models.Order) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, product_name, category, size, size_label, unit_price, currency, quantity, subtotal
		 FROM order_lines WHERE order_number = ? ORDER BY position`,
		order.Number,
	)
	if err != nil {
		return fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(
			&line.ID,
			&line.Product.ID, &line.Product.Name, &line.Product.Category,
			&line.Product.Size, &line.Product.SizeLabel, &line.Product.UnitPrice, &line.Product.Currency,
			&line.Quantity, &line.Subtotal,
		); err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}

		addOnRows, err := s.db.QueryContext(ctx,
			"SELECT name, tier, unit_price, quantity FROM line_add_ons WHERE line_id = ? ORDER BY name",
			line.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get line add-ons: %w", err)
		}
		for addOnRows.Next() {
			var a models.AddOnLine
			if err := addOnRows.Scan(&a.Name, &a.Tier, &a.UnitPrice, &a.Quantity); err != nil {
				addOnRows.Close()
				return fmt.Errorf("failed to scan add-on: %w", err)
			}
			line.AddOns = append(line.AddOns, a)
		}
		addOnRows.Close()
		if err := addOnRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate add-ons: %w", err)
		}

		order.Lines = append(order.Lines, line)
	}
	return rows.Err()
}
