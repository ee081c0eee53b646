package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nest-Microservices-MFY/orders-microservice/internal/core/domain"
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
}

// CreateOrder inserts the order header and all items in one transaction.
// If any item insert fails the header is rolled back with it.
func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin tx", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, total_amount, total_items, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, order.TotalAmount, order.TotalItems, order.Status,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert order", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Quantity, item.Price,
		)
		if err != nil {
			return storageErr("insert order item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit tx", err)
	}
	return nil
}

func (m *MySQLAdapter) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, total_amount, total_items, status, created_at, updated_at
		FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.TotalAmount, &order.TotalItems, &order.Status,
		&order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{OrderID: id}
	}
	if err != nil {
		return nil, storageErr("query order", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, storageErr("query order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, storageErr("scan order item", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate order items", err)
	}

	return &order, nil
}

func (m *MySQLAdapter) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return storageErr("update status", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either the id does not exist or the status already matched.
		// Disambiguate so the caller never mistakes a no-op for a miss.
		var exists int
		err := m.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{OrderID: id}
		}
		if err != nil {
			return storageErr("check order exists", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) CountByStatus(ctx context.Context, status *domain.OrderStatus) (int, error) {
	var (
		count int
		err   error
	)
	if status == nil {
		err = m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	} else {
		err = m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = ?`, *status).Scan(&count)
	}
	if err != nil {
		return 0, storageErr("count orders", err)
	}
	return count, nil
}

func (m *MySQLAdapter) ListByStatus(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]domain.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == nil {
		rows, err = m.db.QueryContext(ctx, `
			SELECT id, total_amount, total_items, status, created_at, updated_at
			FROM orders ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	} else {
		rows, err = m.db.QueryContext(ctx, `
			SELECT id, total_amount, total_items, status, created_at, updated_at
			FROM orders WHERE status = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, *status, limit, offset)
	}
	if err != nil {
		return nil, storageErr("list orders", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.TotalAmount, &order.TotalItems,
			&order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, storageErr("scan order", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate orders", err)
	}
	return orders, nil
}
