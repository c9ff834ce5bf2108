package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	models "github.com/rogerio-castellano/storefront/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, price, image, description, inventory, category`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	var description, category sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &description, &p.Inventory, &category)
	p.Description = description.String
	p.Category = category.String
	return p, err
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, price, image, description, inventory, category) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Image, nullable(p.Description), p.Inventory, nullable(p.Category)).Scan(&p.ID)
	return p, err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, price = $2, image = $3, description = $4, inventory = $5, category = $6 WHERE id = $7`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Price, p.Image, nullable(p.Description), p.Inventory, nullable(p.Category), p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *PostgresProductRepository) SetInventory(id int, inventory int) (models.Product, error) {
	query := `UPDATE products SET inventory = $1 WHERE id = $2 RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, inventory, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// AdjustInventory applies delta through a single conditional update, so the
// bounds check and the write happen atomically on the database side. Two
// concurrent reservations against the same product cannot both succeed on a
// stale inventory read.
func (r *PostgresProductRepository) AdjustInventory(id int, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET inventory = inventory + $1
		WHERE id = $2 AND inventory + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, id))
	if errors.Is(err, sql.ErrNoRows) {
		// No row updated: either the product is gone or the guard rejected
		// the new value.
		if _, lookupErr := r.GetByID(id); lookupErr != nil {
			return models.Product{}, lookupErr
		}
		return models.Product{}, ErrInsufficientInventory
	}
	return p, err
}

func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(f)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	row := r.db.QueryRowContext(ctx, countQuery, args...)
	if err := row.Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += orderClause(f.SortBy, f.SortOrder)

	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
		argIdx++
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, totalCount, rows.Err()
}

func filterConditions(f ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.Query != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *f.MinPrice)
		argIdx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *f.MaxPrice)
		argIdx++
	}

	return query, args, argIdx
}

// orderClause whitelists the sortable columns; anything else falls back to
// insertion order. Ties always break on id to keep pages stable.
func orderClause(sortBy, sortOrder string) string {
	switch sortBy {
	case "name", "price", "inventory":
	default:
		return " ORDER BY id"
	}
	dir := "ASC"
	if sortOrder == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id", sortBy, dir)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
