// Package testutil provides in-memory implementations of the repository
// interfaces and of the external collaborators used by services.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	"github.com/oksasatya/go-storefront/internal/domain/repository"
)

// Store mimics the relational schema, including cascade on roles_users and
// set-null on orders.user_id.
type Store struct {
	mu       sync.Mutex
	seq      int64
	users    map[int64]entity.User
	roles    map[string]entity.Role
	links    map[int64]map[string]bool
	items    map[int64]entity.Item
	orders   map[int64]entity.Order
	sessions map[int64]entity.Session
}

func NewStore() *Store {
	return &Store{
		users:    map[int64]entity.User{},
		roles:    map[string]entity.Role{},
		links:    map[int64]map[string]bool{},
		items:    map[int64]entity.Item{},
		orders:   map[int64]entity.Order{},
		sessions: map[int64]entity.Session{},
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Users() *UserRepo       { return &UserRepo{s} }
func (s *Store) Roles() *RoleRepo       { return &RoleRepo{s} }
func (s *Store) Items() *ItemRepo       { return &ItemRepo{s} }
func (s *Store) Orders() *OrderRepo     { return &OrderRepo{s} }
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s} }

// RoleLinks returns how many roles_users rows reference userID.
func (s *Store) RoleLinks(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links[userID])
}

// AllOrders returns every order regardless of owner, ordered by id.
func (s *Store) AllOrders() []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) withRoles(u entity.User) *entity.User {
	u.Roles = nil
	names := make([]string, 0, len(s.links[u.ID]))
	for n := range s.links[u.ID] {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return s.roles[names[i]].ID < s.roles[names[j]].ID })
	for _, n := range names {
		u.Roles = append(u.Roles, s.roles[n])
	}
	return &u
}

func (s *Store) link(userID int64, role string) error {
	if _, ok := s.roles[role]; !ok {
		return repository.ErrNotFound
	}
	if s.links[userID] == nil {
		s.links[userID] = map[string]bool{}
	}
	s.links[userID][role] = true
	return nil
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *entity.User, roles ...string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	for _, name := range roles {
		if _, ok := s.roles[name]; !ok {
			return repository.ErrNotFound
		}
	}
	u.ID = s.next()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	stored.Roles = nil
	s.users[u.ID] = stored
	for _, name := range roles {
		_ = s.link(u.ID, name)
	}
	u.Roles = s.withRoles(stored).Roles
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.withRoles(u), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return s.withRoles(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *s.withRoles(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	u.UpdatedAt = time.Now()
	stored := *u
	stored.Roles = nil
	s.users[u.ID] = stored
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	delete(s.links, id)
	for oid, o := range s.orders {
		if o.UserID != nil && *o.UserID == id {
			o.UserID = nil
			s.orders[oid] = o
		}
	}
	return nil
}

func (r *UserRepo) AddRole(ctx context.Context, userID int64, role string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link(userID, role)
}

type RoleRepo struct{ s *Store }

func (r *RoleRepo) FindOrCreate(ctx context.Context, name, description string) (*entity.Role, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if role, ok := s.roles[name]; ok {
		return &role, nil
	}
	role := entity.Role{ID: s.next(), Name: name, Description: description}
	s.roles[name] = role
	return &role, nil
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	role, ok := s.roles[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &role, nil
}

type ItemRepo struct{ s *Store }

func (r *ItemRepo) List(ctx context.Context) ([]entity.Item, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	it.ID = s.next()
	s.items[it.ID] = *it
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[it.ID]; !ok {
		return repository.ErrNotFound
	}
	s.items[it.ID] = *it
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type OrderRepo struct{ s *Store }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.UserID != nil {
		if _, ok := s.users[*o.UserID]; !ok {
			return repository.ErrNotFound
		}
	}
	o.ID = s.next()
	o.CreatedAt = time.Now()
	s.orders[o.ID] = *o
	return nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Order, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []entity.Order{}
	for _, o := range s.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type SessionRepo struct{ s *Store }

func (r *SessionRepo) Save(ctx context.Context, sess entity.Session, ttl time.Duration) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, userID int64) (*entity.Session, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sess, nil
}

func (r *SessionRepo) Delete(ctx context.Context, userID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.RoleRepository    = (*RoleRepo)(nil)
	_ repository.ItemRepository    = (*ItemRepo)(nil)
	_ repository.OrderRepository   = (*OrderRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)
