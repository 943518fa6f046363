package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/enginequip/quotation-backend/api/responses"
	"github.com/enginequip/quotation-backend/api/validators"
	"github.com/enginequip/quotation-backend/internal/catalog"
	"github.com/enginequip/quotation-backend/pkg/logger"
)

func CatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

func CatalogTree(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")

		tree, err := svc.Tree(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"tree": tree})
	}
}

func CatalogParts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nodeID, err := validators.ParsePathInt(chi.URLParam(r, "nodeID"), "nodeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parts, err := svc.Parts(r.Context(), nodeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"parts": parts})
	}
}
