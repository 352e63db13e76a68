package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/internal/app/repository"
	"github.com/psomsri/taladsod-backend/internal/app/service"
	"github.com/psomsri/taladsod-backend/internal/app/store"
)

// fixedCatalogSource serves the test catalog without any I/O.
type fixedCatalogSource struct {
	products []model.Product
}

func (s *fixedCatalogSource) Fetch(ctx context.Context) ([]model.Product, error) {
	return s.products, nil
}

func catalogFixture() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Jasmine Rice", Image: "rice.jpg", Options: []model.Option{
			{Label: "1 kg", Price: 100},
			{Label: "5 kg", Price: 450},
		}},
		{ID: 2, Name: "Fish Sauce", Image: "sauce.jpg", Options: []model.Option{
			{Label: "700 ml", Price: 250},
		}},
	}
}

// profileMiddleware pins the profile ID the way SessionMiddleware would.
func profileMiddleware(profileID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("profile_id", profileID)
		c.Next()
	}
}

func setupCartControllerTest(t *testing.T, minSelection int) (service.SelectionService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	selections := store.NewSelectionStore()
	catalogService := service.NewCatalogService(&fixedCatalogSource{products: catalogFixture()}, selections)
	selectionService := service.NewSelectionService(catalogService, selections)
	cartService := service.NewCartService(catalogService, selectionService, repository.NewMemoryCartRepository(), minSelection)
	cartController := NewCartController(cartService)

	_, err := catalogService.Load(context.Background(), "profile-a")
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(profileMiddleware("profile-a"))
	engine.POST("/api/v1/cart", cartController.AddToCart)
	engine.GET("/api/v1/cart", cartController.GetCart)
	engine.GET("/api/v1/cart/summary", cartController.GetSummary)

	return selectionService, engine
}

func TestCartControllerAddToCart(t *testing.T) {
	t.Run("below minimum returns 422 with counts", func(t *testing.T) {
		selections, engine := setupCartControllerTest(t, 2)
		selections.ToggleSelection("profile-a", 1, true)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cart", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp["selected_count"])
		assert.Equal(t, float64(2), resp["required"])
		assert.Contains(t, resp["error"], "at least 2")
	})

	t.Run("successful snapshot", func(t *testing.T) {
		selections, engine := setupCartControllerTest(t, 2)
		selections.ToggleSelection("profile-a", 1, true)
		selections.ToggleSelection("profile-a", 2, true)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/cart", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Items []model.CartItem `json:"items"`
			Count int              `json:"count"`
			Total float64          `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, 350.0, resp.Total)
	})
}

func TestCartControllerGetSummary(t *testing.T) {
	selections, engine := setupCartControllerTest(t, 1)
	selections.ToggleSelection("profile-a", 1, true)
	selections.ToggleSelection("profile-a", 2, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/cart", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/cart/summary", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count          int     `json:"count"`
		Total          float64 `json:"total"`
		FormattedTotal string  `json:"formatted_total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 350.0, resp.Total)
	assert.Equal(t, "350", resp.FormattedTotal)
}

func TestCartControllerHasNoDeletePath(t *testing.T) {
	selections, engine := setupCartControllerTest(t, 1)
	selections.ToggleSelection("profile-a", 1, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/cart", nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The persisted cart is consumed only by a successful checkout; there
	// is no client-facing delete operation.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	engine.ServeHTTP(w, req)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count, "cart survives the rejected delete attempt")
}
