package controllers

import (
	"net/http"

	"github.com/enginequip/quotation-backend/api/responses"
	"github.com/enginequip/quotation-backend/internal/parts"
	"github.com/enginequip/quotation-backend/pkg/logger"
)

// PartsSearch serves the matcher's debounced lookups. The debounce
// happens client side; the endpoint just answers the query.
func PartsSearch(svc parts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if results == nil {
			results = []parts.Part{}
		}
		responses.WriteSuccess(w, map[string]any{"parts": results})
	}
}
