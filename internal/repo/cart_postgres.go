package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/rogerio-castellano/storefront/internal/models"
)

type PostgresCartRepository struct {
	db *sql.DB
}

func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) GetAll() ([]models.CartItem, error) {
	query := `SELECT id, product_id, quantity FROM cart_items ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresCartRepository) GetByID(id int) (models.CartItem, error) {
	query := `SELECT id, product_id, quantity FROM cart_items WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var item models.CartItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.ProductID, &item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CartItem{}, ErrCartItemNotFound
	}
	return item, err
}

func (r *PostgresCartRepository) GetByProductID(productID int) (models.CartItem, error) {
	query := `SELECT id, product_id, quantity FROM cart_items WHERE product_id = $1 ORDER BY id LIMIT 1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var item models.CartItem
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&item.ID, &item.ProductID, &item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CartItem{}, ErrCartItemNotFound
	}
	return item, err
}

func (r *PostgresCartRepository) Create(item models.CartItem) (models.CartItem, error) {
	query := `INSERT INTO cart_items (product_id, quantity) VALUES ($1, $2) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, item.ProductID, item.Quantity).Scan(&item.ID)
	return item, err
}

func (r *PostgresCartRepository) UpdateQuantity(id int, quantity int) (models.CartItem, error) {
	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2 RETURNING id, product_id, quantity`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var item models.CartItem
	err := r.db.QueryRowContext(ctx, query, quantity, id).Scan(&item.ID, &item.ProductID, &item.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CartItem{}, ErrCartItemNotFound
	}
	return item, err
}

func (r *PostgresCartRepository) Delete(id int) error {
	query := `DELETE FROM cart_items WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *PostgresCartRepository) DeleteByProductID(productID int) error {
	query := `DELETE FROM cart_items WHERE product_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, productID)
	return err
}
