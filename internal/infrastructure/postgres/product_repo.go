package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// productColumns expects products aliased as p and categories as c, in the
// order productDest lists them.
const productColumns = `
	       p.id, p.name, p.description, p.rich_description, p.image, p.images,
	       p.brand, p.price, p.count_in_stock, p.rating, p.num_reviews,
	       p.is_featured, p.date_created,
	       c.id, c.name, c.icon, c.color`

// productSelect populates the category the same way for every read. Each
// query defines a CTE named p, so writes can reuse it through RETURNING *.
const productSelect = `
	SELECT ` + productColumns + `
	FROM   p
	JOIN   categories c ON c.id = p.category_id`

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	query, args := listProductsQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// listProductsQuery numbers placeholders in the order args are appended.
func listProductsQuery(filter domain.ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		where = append(where, fmt.Sprintf("p.category_id = ANY($%d::uuid[])", len(args)))
	}
	if filter.Featured {
		where = append(where, "p.is_featured")
	}

	query := `WITH p AS (SELECT * FROM products)` + productSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\tORDER BY p.date_created DESC, p.id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf("\n\tLIMIT $%d", len(args))
	}
	return query, args
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `WITH p AS (SELECT * FROM products WHERE id = $1)`+productSelect, id)
	return scanProduct(row)
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		WITH p AS (
			INSERT INTO products (
				name, description, rich_description, image, images, brand, price,
				category_id, count_in_stock, rating, num_reviews, is_featured
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING *
		)` + productSelect

	row := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.RichDescription,
		p.Image,
		nonNil(p.Images),
		p.Brand,
		p.Price,
		p.Category.ID,
		p.CountInStock,
		p.Rating,
		p.NumReviews,
		p.IsFeatured,
	)
	return scanProduct(row)
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		WITH p AS (
			UPDATE products
			SET    name = $2, description = $3, rich_description = $4, image = $5,
			       brand = $6, price = $7, category_id = $8, count_in_stock = $9,
			       rating = $10, num_reviews = $11, is_featured = $12
			WHERE  id = $1
			RETURNING *
		)` + productSelect

	row := r.pool.QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.RichDescription,
		p.Image,
		p.Brand,
		p.Price,
		p.Category.ID,
		p.CountInStock,
		p.Rating,
		p.NumReviews,
		p.IsFeatured,
	)
	return scanProduct(row)
}

func (r *ProductRepository) SetImages(ctx context.Context, id string, images []string) (*domain.Product, error) {
	query := `
		WITH p AS (
			UPDATE products SET images = $2 WHERE id = $1
			RETURNING *
		)` + productSelect

	row := r.pool.QueryRow(ctx, query, id, nonNil(images))
	return scanProduct(row)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p domain.Product
		c domain.Category
	)
	if err := row.Scan(productDest(&p, &c)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.Category = &c
	return &p, nil
}

func productDest(p *domain.Product, c *domain.Category) []any {
	return []any{
		&p.ID, &p.Name, &p.Description, &p.RichDescription, &p.Image, &p.Images,
		&p.Brand, &p.Price, &p.CountInStock, &p.Rating, &p.NumReviews,
		&p.IsFeatured, &p.DateCreated,
		&c.ID, &c.Name, &c.Icon, &c.Color,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
