package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psomsri/taladsod-backend/config"
)

const catalogJSON = `[
	{"id": 1, "name": "Jasmine Rice", "image": "https://cdn.example.com/rice.jpg",
	 "options": [{"label": "1 kg", "price": 100}, {"label": "5 kg", "price": 450}]},
	{"id": 2, "name": "Fish Sauce", "image": "https://cdn.example.com/sauce.jpg",
	 "options": [{"label": "700 ml", "price": 250}]}
]`

func TestNewSource(t *testing.T) {
	t.Run("http", func(t *testing.T) {
		src, err := NewSource(&config.CatalogConfig{Source: "http", URL: "http://example.com/products.json"})
		require.NoError(t, err)
		assert.IsType(t, &httpSource{}, src)
	})

	t.Run("file", func(t *testing.T) {
		src, err := NewSource(&config.CatalogConfig{Source: "file", FilePath: "products.json"})
		require.NoError(t, err)
		assert.IsType(t, &fileSource{}, src)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewSource(&config.CatalogConfig{Source: "ftp"})
		assert.Error(t, err)
	})
}

func TestHTTPSourceFetch(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(catalogJSON))
		}))
		defer server.Close()

		src := newHTTPSource(server.URL)
		products, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Jasmine Rice", products[0].Name)
		assert.Len(t, products[0].Options, 2)
		assert.Equal(t, 450.0, products[0].Options[1].Price)
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		src := newHTTPSource(server.URL)
		_, err := src.Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<!doctype html>"))
		}))
		defer server.Close()

		src := newHTTPSource(server.URL)
		_, err := src.Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestFileSourceFetch(t *testing.T) {
	t.Run("reads catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

		src := newFileSource(path)
		products, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		src := newFileSource(filepath.Join(t.TempDir(), "absent.json"))
		_, err := src.Fetch(context.Background())
		assert.Error(t, err)
	})
}
