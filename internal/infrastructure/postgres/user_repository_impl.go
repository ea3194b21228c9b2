package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

const userColumns = `id, COALESCE(first_name, ''), COALESCE(phone_number, ''), email, password,
	active, confirmed_at, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.FirstName, &u.PhoneNumber, &u.Email, &u.Password,
		&u.Active, &u.ConfirmedAt, &u.CreatedAt, &u.UpdatedAt)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User, roles ...string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, phone_number, active, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, nullable(u.FirstName), nullable(u.PhoneNumber), u.Active, u.ConfirmedAt)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapErr(err)
	}

	for _, name := range roles {
		if err := linkRole(ctx, tx, u.ID, name); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	u.Roles, err = rolesFor(ctx, r.pool, u.ID)
	return err
}

func linkRole(ctx context.Context, q querier, userID int64, role string) error {
	var roleID int64
	if err := q.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, role).Scan(&roleID); err != nil {
		err = mapErr(err)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("role %q: %w", role, err)
		}
		return err
	}
	_, err := q.Exec(ctx, `
		INSERT INTO roles_users (user_id, role_id) VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, roleID)
	return mapErr(err)
}

func rolesFor(ctx context.Context, q querier, userID int64) ([]entity.Role, error) {
	rows, err := q.Query(ctx, `
		SELECT r.id, r.name, r.description
		FROM roles r
		JOIN roles_users ru ON ru.role_id = r.id
		WHERE ru.user_id = $1
		ORDER BY r.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1`, arg)
	if err := scanUser(row, u); err != nil {
		return nil, mapErr(err)
	}
	roles, err := rolesFor(ctx, r.pool, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	index := map[int64]int{}
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return users, nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	roleRows, err := r.pool.Query(ctx, `
		SELECT ru.user_id, r.id, r.name, r.description
		FROM roles_users ru
		JOIN roles r ON r.id = ru.role_id
		WHERE ru.user_id = ANY($1)
		ORDER BY ru.user_id, r.id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var uid int64
		var role entity.Role
		if err := roleRows.Scan(&uid, &role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		i := index[uid]
		users[i].Roles = append(users[i].Roles, role)
	}
	return users, roleRows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password = $2, first_name = $3, phone_number = $4,
		    active = $5, confirmed_at = $6, updated_at = $7
		WHERE id = $8
	`, u.Email, u.Password, nullable(u.FirstName), nullable(u.PhoneNumber),
		u.Active, u.ConfirmedAt, u.UpdatedAt, u.ID)
	if err != nil {
		return mapErr(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete relies on ON DELETE CASCADE (roles_users) and ON DELETE SET NULL (orders).
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) AddRole(ctx context.Context, userID int64, role string) error {
	return linkRole(ctx, r.pool, userID, role)
}

var _ repository.UserRepository = (*UserRepository)(nil)
