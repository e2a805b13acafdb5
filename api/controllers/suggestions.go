package controllers

import (
	"net/http"

	"github.com/vendasul/sugestao-vendedor/api/responses"
	"github.com/vendasul/sugestao-vendedor/api/validators"
	"github.com/vendasul/sugestao-vendedor/internal/intake"
	"github.com/vendasul/sugestao-vendedor/pkg/enums"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

// ListSuggestions returns every stored suggestion row in the raw column
// shape, as a JSON array. An empty table yields [] rather than null.
func ListSuggestions(svc *intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := svc.ListSuggestions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, suggestions)
	}
}

type createSuggestionRequest struct {
	Reference       string `json:"referencia" validate:"required"`
	Quantity        int    `json:"quantidade" validate:"required,min=1,max=1000"`
	Brand           string `json:"marca" validate:"required"`
	Type            string `json:"tipo" validate:"required,oneof=VENDA_CASADA VENDA_PERDIDA"`
	Comment         string `json:"comentario"`
	ItemCode        string `json:"codigo"`
	ItemDescription string `json:"descricao"`
	Seller          string `json:"vendedor" validate:"required"`
}

// CreateSuggestion validates and stores one suggestion, answering 201.
func CreateSuggestion(svc *intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createSuggestionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		suggestionType, err := enums.ParseSuggestionType(body.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tipo"))
			return
		}

		input := intake.NewSuggestion{
			Reference:       body.Reference,
			Quantity:        body.Quantity,
			Brand:           body.Brand,
			Type:            suggestionType,
			Comment:         body.Comment,
			ItemCode:        body.ItemCode,
			ItemDescription: body.ItemDescription,
			Seller:          body.Seller,
		}
		if err := svc.Insert(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, map[string]bool{"ok": true})
	}
}
