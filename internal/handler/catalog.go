package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/domain"
)

// CategoryIngredients is one category's slice of the catalog
type CategoryIngredients struct {
	Category    domain.FoodCategory `json:"category"`
	Ingredients []domain.Ingredient `json:"ingredients"`
}

// CatalogResponse lists catalog ingredients grouped by category
type CatalogResponse struct {
	Total      int                   `json:"total"`
	Categories []CategoryIngredients `json:"categories"`
}

// HandleGetCatalog returns the ingredient catalog, optionally filtered with ?category=
// GET /api/v1/catalog
func HandleGetCatalog(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := cat.Categories()

		if name := GetOptionalQueryParam(r, "category", ""); name != "" {
			c, err := domain.ParseCategory(name)
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidCategoryQuery, name))
				return
			}
			categories = []domain.FoodCategory{c}
		}

		resp := CatalogResponse{Categories: make([]CategoryIngredients, 0, len(categories))}
		for _, c := range categories {
			ings := cat.IngredientsOf(c)
			resp.Total += len(ings)
			resp.Categories = append(resp.Categories, CategoryIngredients{Category: c, Ingredients: ings})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
