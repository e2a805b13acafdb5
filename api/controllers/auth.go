package controllers

import (
	"net/http"

	"github.com/vendasul/sugestao-vendedor/api/responses"
	"github.com/vendasul/sugestao-vendedor/api/validators"
	"github.com/vendasul/sugestao-vendedor/internal/intake"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

type loginResponse struct {
	OK   bool    `json:"ok"`
	Name *string `json:"nome"`
}

// Login checks credentials and answers {"ok", "nome"}. Rejected credentials
// are a regular 200 with ok=false, not an HTTP error.
func Login(svc *intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.Authenticate(r.Context(), body.Login, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := loginResponse{OK: outcome.OK}
		if outcome.OK {
			payload.Name = &outcome.DisplayName
		}
		responses.WriteJSON(w, http.StatusOK, payload)
	}
}
