// Package intake is the server-side application layer behind the API
// controllers. It owns credential checks, catalog lookups and suggestion
// writes against the store.
package intake

import (
	"context"
	"strings"
	"time"

	"github.com/vendasul/sugestao-vendedor/internal/store"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/db/models"
	"github.com/vendasul/sugestao-vendedor/pkg/enums"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
	"github.com/vendasul/sugestao-vendedor/pkg/security"
)

const stampLayout = "02/01/2006 15:04:05"

// AuthOutcome is the login check result exposed to the API.
type AuthOutcome struct {
	OK          bool
	DisplayName string
}

// Item is one deduplicated catalog candidate.
type Item struct {
	Code        string
	Description string
}

// NewSuggestion carries the seller-writable fields accepted by the API.
// Buyer-side columns are never part of this payload.
type NewSuggestion struct {
	Reference       string
	Quantity        int
	Brand           string
	Type            enums.SuggestionType
	Comment         string
	ItemCode        string
	ItemDescription string
	Seller          string
}

// Service implements the intake operations.
type Service struct {
	repo    store.Repository
	passCfg config.PasswordConfig
	logg    *logger.Logger
	clock   func() time.Time
}

func NewService(repo store.Repository, passCfg config.PasswordConfig, logg *logger.Logger) *Service {
	return &Service{repo: repo, passCfg: passCfg, logg: logg, clock: time.Now}
}

// Authenticate checks the credentials against the user table. Unknown
// logins, wrong passwords and unverifiable stored values all fail closed
// as a plain "not ok" outcome.
func (s *Service) Authenticate(ctx context.Context, login, password string) (AuthOutcome, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return AuthOutcome{}, nil
	}

	user, err := s.repo.FindUserByLogin(ctx, login)
	if err != nil {
		return AuthOutcome{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "querying credentials")
	}
	if user == nil || user.Password == "" {
		return AuthOutcome{}, nil
	}

	ok, legacy, err := security.VerifyCredential(password, user.Password, s.passCfg)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "credential verification failed", err)
		}
		return AuthOutcome{}, nil
	}
	if legacy && s.logg != nil {
		s.logg.Warn(s.logg.WithSeller(ctx, user.Login), "credential matched via legacy plaintext comparison")
	}
	if !ok {
		return AuthOutcome{}, nil
	}

	name := user.DisplayName
	if name == "" {
		name = user.Login
	}
	return AuthOutcome{OK: true, DisplayName: name}, nil
}

// ListSuggestions returns every stored row, raw column shape, never nil.
func (s *Service) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	suggestions, err := s.repo.ListSuggestions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "querying suggestions")
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	return suggestions, nil
}

// ListItems returns the deduplicated (code, description) pairs for a
// reference. A blank reference yields an empty list without a query.
func (s *Service) ListItems(ctx context.Context, reference string) ([]Item, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return []Item{}, nil
	}

	rows, err := s.repo.ListItemsByReference(ctx, reference)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "querying reference items")
	}

	seen := make(map[Item]struct{}, len(rows))
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item := Item{Code: row.Code, Description: row.Description}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

// Insert stores a new suggestion. Only the seller fields are written and
// the submission stamp is set here, server-side.
func (s *Service) Insert(ctx context.Context, input NewSuggestion) error {
	suggestion := models.Suggestion{
		Reference:       strings.TrimSpace(input.Reference),
		Quantity:        input.Quantity,
		Brand:           strings.TrimSpace(input.Brand),
		SuggestionType:  input.Type.String(),
		SellerComment:   strings.TrimSpace(input.Comment),
		Seller:          strings.TrimSpace(input.Seller),
		ItemCode:        input.ItemCode,
		ItemDescription: input.ItemDescription,
		SubmissionStamp: s.clock().Format(stampLayout),
	}
	if err := s.repo.InsertSuggestion(ctx, &suggestion); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting suggestion")
	}
	return nil
}
