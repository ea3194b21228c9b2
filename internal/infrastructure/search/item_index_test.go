package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-storefront/internal/domain/entity"
)

// fakeES answers like an Elasticsearch 8 node; the client checks the product header.
func fakeES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := NewClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return es
}

func TestItemIndex_IndexItem(t *testing.T) {
	var gotPath string
	var gotDoc itemDoc
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotDoc)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	idx := NewItemIndex(es, "items")
	err := idx.IndexItem(context.Background(), entity.Item{ID: 3, Name: "Widget", Intro: "desc", Price: 10})
	require.NoError(t, err)
	assert.Equal(t, "/items/_doc/3", gotPath)
	assert.Equal(t, itemDoc{ID: 3, Name: "Widget", Intro: "desc", Price: 10}, gotDoc)
}

func TestItemIndex_DeleteMissingIsNotAnError(t *testing.T) {
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	idx := NewItemIndex(es, "items")
	assert.NoError(t, idx.DeleteItem(context.Background(), 42))
}

func TestItemIndex_SearchItems(t *testing.T) {
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/_search", r.URL.Path)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"1","_source":{"id":1,"name":"Widget","intro":"desc","price":10}}]}}`))
	})

	idx := NewItemIndex(es, "items")
	items, err := idx.SearchItems(context.Background(), "widg", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entity.Item{ID: 1, Name: "Widget", Intro: "desc", Price: 10}, items[0])
}

func TestItemIndex_SearchError(t *testing.T) {
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	idx := NewItemIndex(es, "items")
	_, err := idx.SearchItems(context.Background(), "x", 10)
	assert.Error(t, err)
}

func TestItemIndex_EnsureIndex(t *testing.T) {
	var created bool
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			assert.Equal(t, "/items", r.URL.Path)
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		}
	})

	idx := NewItemIndex(es, "items")
	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.True(t, created)
}

func TestItemIndex_EnsureIndexExisting(t *testing.T) {
	es := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	idx := NewItemIndex(es, "items")
	assert.NoError(t, idx.EnsureIndex(context.Background()))
}
