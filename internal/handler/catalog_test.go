package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/handler"
)

func TestHandleGetCatalog(t *testing.T) {
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	h := handler.HandleGetCatalog(cat)

	t.Run("all categories", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[handler.CatalogResponse](t, rec)
		assert.Equal(t, cat.Len(), resp.Total)
		require.Len(t, resp.Categories, len(cat.Categories()))
		for i, group := range resp.Categories {
			assert.Equal(t, cat.Categories()[i], group.Category)
			assert.Equal(t, cat.IngredientsOf(group.Category), group.Ingredients)
		}
	})

	t.Run("filtered by category", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog?category=Fruit", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[handler.CatalogResponse](t, rec)
		require.Len(t, resp.Categories, 1)
		assert.Equal(t, domain.CategoryFruit, resp.Categories[0].Category)
		assert.Equal(t, cat.CountOf(domain.CategoryFruit), resp.Total)
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog?category=candy", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[handler.ErrorResponse](t, rec).Error, "candy")
	})
}
