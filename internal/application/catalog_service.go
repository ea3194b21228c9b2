package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
	repo "github.com/oksasatya/go-storefront/internal/domain/repository"
	"github.com/oksasatya/go-storefront/pkg/helpers"
)

// ItemIndex is the optional full-text index over the catalog.
type ItemIndex interface {
	IndexItem(ctx context.Context, it entity.Item) error
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, q string, size int) ([]entity.Item, error)
}

const defaultSearchSize = 20

type CatalogService struct {
	Items  repo.ItemRepository
	Orders repo.OrderRepository
	Index  ItemIndex // nil disables search
	Logger *logrus.Logger
}

func NewCatalogService(items repo.ItemRepository, orders repo.OrderRepository, index ItemIndex, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Items: items, Orders: orders, Index: index, Logger: logger}
}

func (s *CatalogService) ListItems(ctx context.Context) ([]entity.Item, error) {
	return s.Items.List(ctx)
}

func (s *CatalogService) GetItem(ctx context.Context, id int64) (*entity.Item, error) {
	it, err := s.Items.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "item")
	}
	return it, nil
}

func (s *CatalogService) AddItem(ctx context.Context, in ItemInput) (*entity.Item, error) {
	if _, err := Authorize(ctx, RequireRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	it := &entity.Item{Name: in.Name, Price: in.Price, Intro: in.Intro}
	if err := s.Items.Create(ctx, it); err != nil {
		helpers.LogError(s.Logger, "create item failed", err, nil)
		return nil, err
	}
	s.index(ctx, *it)
	return it, nil
}

// EditItem overwrites name, price and intro of an existing item.
func (s *CatalogService) EditItem(ctx context.Context, id int64, in ItemInput) (*entity.Item, error) {
	if _, err := Authorize(ctx, RequireRole(entity.RoleAdmin)); err != nil {
		return nil, err
	}
	if err := check(in); err != nil {
		return nil, err
	}
	it := &entity.Item{ID: id, Name: in.Name, Price: in.Price, Intro: in.Intro}
	if err := s.Items.Update(ctx, it); err != nil {
		return nil, notFound(err, "item")
	}
	s.index(ctx, *it)
	return it, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id int64) error {
	if _, err := Authorize(ctx, RequireRole(entity.RoleAdmin)); err != nil {
		return err
	}
	if err := s.Items.Delete(ctx, id); err != nil {
		return notFound(err, "item")
	}
	if s.Index != nil {
		if err := s.Index.DeleteItem(ctx, id); err != nil {
			helpers.LogError(s.Logger, "unindex item failed", err, logrus.Fields{"item_id": id})
		}
	}
	return nil
}

// SearchItems returns no results when no index is configured.
func (s *CatalogService) SearchItems(ctx context.Context, q string, size int) ([]entity.Item, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []entity.Item{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	return s.Index.SearchItems(ctx, q, size)
}

func (s *CatalogService) ListOrdersFor(ctx context.Context, userID int64) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *CatalogService) index(ctx context.Context, it entity.Item) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexItem(ctx, it); err != nil {
		helpers.LogError(s.Logger, "index item failed", err, logrus.Fields{"item_id": it.ID})
	}
}
