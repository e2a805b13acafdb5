// Package session holds the per-user authentication context that gates
// the suggestion flows.
package session

import (
	"context"
	"strings"

	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
)

// Portuguese user-facing login outcomes.
var (
	ErrCredentialsRequired = pkgerrors.New(pkgerrors.CodeValidation, "Informe Usuário e Senha.")
	ErrInvalidCredentials  = pkgerrors.New(pkgerrors.CodeUnauthorized, "Usuário ou senha inválidos.")
	ErrBackendUnavailable  = pkgerrors.New(pkgerrors.CodeDependency, "Erro ao autenticar (API).")
)

// Context is one user's session. The zero value is logged out. It is a
// per-user value and is never shared.
type Context struct {
	Authenticated bool
	Username      string
}

// Manager performs logins against the configured gateway.
type Manager struct {
	gw   gateway.DataGateway
	logg *logger.Logger
}

func NewManager(gw gateway.DataGateway, logg *logger.Logger) *Manager {
	return &Manager{gw: gw, logg: logg}
}

// Login authenticates the credentials and returns an authenticated session.
// Invalid credentials and an unreachable backend are distinct outcomes;
// the display name falls back to the login when the backend returns none.
func (m *Manager) Login(ctx context.Context, login, password string) (Context, error) {
	if !gateway.CredentialsPresent(login, password) {
		return Context{}, ErrCredentialsRequired
	}

	result, err := m.gw.Authenticate(ctx, login, password)
	if err != nil {
		// Rejected user credentials arrive as result.OK=false, never as an
		// error. An UNAUTHORIZED error here means the API rejected our key,
		// which is a deployment problem, not the user's password.
		if m.logg != nil {
			m.logg.Error(ctx, "authentication backend call failed", err)
		}
		return Context{}, ErrBackendUnavailable
	}
	if !result.OK {
		return Context{}, ErrInvalidCredentials
	}

	name := strings.TrimSpace(result.DisplayName)
	if name == "" {
		name = strings.TrimSpace(login)
	}
	return Context{Authenticated: true, Username: name}, nil
}

// Logout returns the zero session.
func (m *Manager) Logout() Context {
	return Context{}
}
