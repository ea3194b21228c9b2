package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

// Gateway records payment requests and answers with URL or Err.
type Gateway struct {
	mu       sync.Mutex
	URL      string
	Err      error
	Requests []entity.PaymentRequest
}

func (g *Gateway) CheckoutURL(ctx context.Context, req entity.PaymentRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Requests = append(g.Requests, req)
	if g.Err != nil {
		return "", g.Err
	}
	return g.URL, nil
}

// Publisher collects published events.
type Publisher struct {
	mu     sync.Mutex
	Err    error
	Events []any
}

func (p *Publisher) PublishJSON(ctx context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, body)
	return nil
}

// Index is a substring-matching item index.
type Index struct {
	mu    sync.Mutex
	Items map[int64]entity.Item
}

func NewIndex() *Index { return &Index{Items: map[int64]entity.Item{}} }

func (x *Index) IndexItem(ctx context.Context, it entity.Item) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.Items[it.ID] = it
	return nil
}

func (x *Index) DeleteItem(ctx context.Context, id int64) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.Items, id)
	return nil
}

func (x *Index) SearchItems(ctx context.Context, q string, size int) ([]entity.Item, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	q = strings.ToLower(q)
	out := []entity.Item{}
	for _, it := range x.Items {
		if len(out) >= size {
			break
		}
		if strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.Intro), q) {
			out = append(out, it)
		}
	}
	return out, nil
}
