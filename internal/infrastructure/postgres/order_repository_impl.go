package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (name, intro, price, order_active, user_id, payment_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, o.Name, o.Intro, o.Price, o.Active, o.UserID, o.PaymentRef)
	return mapErr(row.Scan(&o.ID, &o.CreatedAt))
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, intro, price, order_active, user_id, payment_ref, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Name, &o.Intro, &o.Price, &o.Active, &o.UserID, &o.PaymentRef, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
