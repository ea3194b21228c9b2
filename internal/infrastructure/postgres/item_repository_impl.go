package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) List(ctx context.Context) ([]entity.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, intro, price FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Intro, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	it := &entity.Item{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, intro, price FROM items WHERE id = $1
	`, id).Scan(&it.ID, &it.Name, &it.Intro, &it.Price)
	if err != nil {
		return nil, mapErr(err)
	}
	return it, nil
}

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO items (name, intro, price) VALUES ($1, $2, $3)
		RETURNING id
	`, it.Name, it.Intro, it.Price).Scan(&it.ID)
}

func (r *ItemRepository) Update(ctx context.Context, it *entity.Item) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE items SET name = $1, intro = $2, price = $3 WHERE id = $4
	`, it.Name, it.Intro, it.Price, it.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ItemRepository = (*ItemRepository)(nil)
