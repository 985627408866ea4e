package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderSelect = `
	SELECT o.id, o.shipping_address1, o.shipping_address2, o.city, o.zip,
	       o.country, o.phone, o.status, o.total_price, o.date_ordered,
	       u.id, u.name
	FROM   orders o
	LEFT JOIN users u ON u.id = o.user_id`

func (r *OrderRepository) List(ctx context.Context, userID string) ([]*domain.Order, error) {
	query, args := listOrdersQuery(userID)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if userID != "" {
		if err := r.loadItems(ctx, orders); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// listOrdersQuery returns every order, or only userID's when it is set.
func listOrdersQuery(userID string) (string, []any) {
	query := orderSelect
	var args []any
	if userID != "" {
		query += "\n\tWHERE o.user_id = $1"
		args = append(args, userID)
	}
	return query + "\n\tORDER BY o.date_ordered DESC, o.id", args
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+"\n\tWHERE o.id = $1", id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	var userID *string
	if o.User != nil && o.User.ID != "" {
		userID = &o.User.ID
	}

	var id string
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (
				shipping_address1, shipping_address2, city, zip, country,
				phone, status, total_price, user_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			o.ShippingAddress1, o.ShippingAddress2, o.City, o.Zip, o.Country,
			o.Phone, o.Status, o.TotalPrice, userID,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range o.OrderItems {
			batch.Queue(`
				INSERT INTO order_items (order_id, product_id, quantity, position)
				VALUES ($1, $2, $3, $4)`,
				id, item.Product.ID, item.Quantity, i,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the order; its items go with it through ON DELETE CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepository) TotalSales(ctx context.Context) (float64, error) {
	var total float64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_price), 0)::float8 FROM orders`).Scan(&total); err != nil {
		return 0, fmt.Errorf("total sales: %w", err)
	}
	return total, nil
}

// loadItems fills OrderItems for every order with one query, products and
// their categories populated.
func (r *OrderRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.OrderItems = make([]domain.OrderItem, 0)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT oi.order_id, oi.id, oi.quantity,`+productColumns+`
		FROM   order_items oi
		JOIN   products p   ON p.id = oi.product_id
		JOIN   categories c ON c.id = p.category_id
		WHERE  oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.position`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			item    domain.OrderItem
			p       domain.Product
			c       domain.Category
		)
		dest := append([]any{&orderID, &item.ID, &item.Quantity}, productDest(&p, &c)...)
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		p.Category = &c
		item.Product = &p
		o := byID[orderID]
		o.OrderItems = append(o.OrderItems, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o        domain.Order
		userID   *string
		userName *string
	)
	err := row.Scan(
		&o.ID, &o.ShippingAddress1, &o.ShippingAddress2, &o.City, &o.Zip,
		&o.Country, &o.Phone, &o.Status, &o.TotalPrice, &o.DateOrdered,
		&userID, &userName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if userID != nil {
		o.User = &domain.UserRef{ID: *userID}
		if userName != nil {
			o.User.Name = *userName
		}
	}
	return &o, nil
}
