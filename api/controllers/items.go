package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendasul/sugestao-vendedor/api/responses"
	"github.com/vendasul/sugestao-vendedor/internal/intake"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

type itemPayload struct {
	Code        string `json:"codigo"`
	Description string `json:"descricao"`
}

// ListItems returns the deduplicated catalog candidates for a reference.
func ListItems(svc *intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference := chi.URLParam(r, "referencia")

		items, err := svc.ListItems(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]itemPayload, 0, len(items))
		for _, item := range items {
			payload = append(payload, itemPayload{Code: item.Code, Description: item.Description})
		}
		responses.WriteJSON(w, http.StatusOK, payload)
	}
}
