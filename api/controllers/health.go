package controllers

import (
	"net/http"

	"github.com/vendasul/sugestao-vendedor/api/responses"
	"github.com/vendasul/sugestao-vendedor/pkg/db"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

// Health reports backend reachability as {"ok": bool}. The status code is
// always 200; clients read the flag, not the code.
func Health(dbP db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok := true
		if err := dbP.Ping(r.Context()); err != nil {
			if logg != nil {
				logg.Error(r.Context(), "database ping failed", err)
			}
			ok = false
		}
		responses.WriteJSON(w, http.StatusOK, map[string]bool{"ok": ok})
	}
}
