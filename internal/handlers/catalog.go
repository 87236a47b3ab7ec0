package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jingjai/verifier/internal/catalog"
	"github.com/jingjai/verifier/internal/models"
)

func (h *Handler) HandleBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	brands := h.catalog.Brands()
	if r.URL.Query().Get("featured") == "1" {
		featured := make([]models.Brand, 0, len(brands))
		for _, brand := range brands {
			if brand.Featured {
				featured = append(featured, brand)
			}
		}
		brands = featured
	}

	h.writeJSON(w, map[string]any{
		"brands": brands,
		"total":  len(brands),
	})
}

func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products := h.catalog.Products()
	h.writeJSON(w, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

func (h *Handler) HandleProductDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/products/")
	spec, err := h.catalog.Spec(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.writeError(w, "Product not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to load product: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, spec)
}
