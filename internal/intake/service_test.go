package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/db/models"
	"github.com/vendasul/sugestao-vendedor/pkg/enums"
	"github.com/vendasul/sugestao-vendedor/pkg/security"
)

type stubRepo struct {
	user     *models.UserCredential
	userErr  error
	items    []models.ReferenceItem
	itemsErr error

	suggestions []models.Suggestion
	listErr     error

	inserted  *models.Suggestion
	insertErr error

	findCalls int
	itemCalls int
}

func (s *stubRepo) ListSuggestions(context.Context) ([]models.Suggestion, error) {
	return s.suggestions, s.listErr
}

func (s *stubRepo) InsertSuggestion(_ context.Context, suggestion *models.Suggestion) error {
	s.inserted = suggestion
	return s.insertErr
}

func (s *stubRepo) FindUserByLogin(context.Context, string) (*models.UserCredential, error) {
	s.findCalls++
	return s.user, s.userErr
}

func (s *stubRepo) ListItemsByReference(context.Context, string) ([]models.ReferenceItem, error) {
	s.itemCalls++
	return s.items, s.itemsErr
}

func legacyConfig() config.PasswordConfig {
	return config.PasswordConfig{AllowLegacyPlaintext: true}
}

func TestAuthenticateHashedCredential(t *testing.T) {
	hash, err := security.HashPassword("s3nha", config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubRepo{user: &models.UserCredential{Login: "maria", Password: hash, DisplayName: "Maria Silva"}}
	svc := NewService(repo, config.PasswordConfig{}, nil)

	outcome, err := svc.Authenticate(context.Background(), "maria", "s3nha")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !outcome.OK || outcome.DisplayName != "Maria Silva" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	outcome, err = svc.Authenticate(context.Background(), "maria", "errada")
	if err != nil || outcome.OK {
		t.Fatalf("wrong password accepted: %+v %v", outcome, err)
	}
}

func TestAuthenticateLegacyModeOff(t *testing.T) {
	repo := &stubRepo{user: &models.UserCredential{Login: "joao", Password: "legado"}}
	svc := NewService(repo, config.PasswordConfig{}, nil)

	outcome, err := svc.Authenticate(context.Background(), "joao", "legado")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if outcome.OK {
		t.Fatal("plaintext credential accepted with legacy mode off")
	}
}

func TestAuthenticateLegacyModeOn(t *testing.T) {
	repo := &stubRepo{user: &models.UserCredential{Login: "joao", Password: "legado"}}
	svc := NewService(repo, legacyConfig(), nil)

	outcome, err := svc.Authenticate(context.Background(), "joao", "legado")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !outcome.OK || outcome.DisplayName != "joao" {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestAuthenticateEmptyCredentialsSkipQuery(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, legacyConfig(), nil)

	for _, creds := range [][2]string{{"", "x"}, {"maria", ""}, {"  ", "x"}} {
		outcome, err := svc.Authenticate(context.Background(), creds[0], creds[1])
		if err != nil || outcome.OK {
			t.Fatalf("creds %v: %+v %v", creds, outcome, err)
		}
	}
	if repo.findCalls != 0 {
		t.Fatalf("repository queried %d times", repo.findCalls)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := NewService(&stubRepo{}, legacyConfig(), nil)

	outcome, err := svc.Authenticate(context.Background(), "ghost", "x")
	if err != nil || outcome.OK {
		t.Fatalf("unknown user accepted: %+v %v", outcome, err)
	}
}

func TestListSuggestionsNeverNil(t *testing.T) {
	svc := NewService(&stubRepo{}, legacyConfig(), nil)

	suggestions, err := svc.ListSuggestions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if suggestions == nil {
		t.Fatal("nil slice returned")
	}
}

func TestListItemsDeduplicates(t *testing.T) {
	repo := &stubRepo{items: []models.ReferenceItem{
		{Reference: "ABC123", Code: "001", Description: "Parafuso"},
		{Reference: "ABC123", Code: "001", Description: "Parafuso"},
		{Reference: "ABC123", Code: "002", Description: "Porca"},
	}}
	svc := NewService(repo, legacyConfig(), nil)

	items, err := svc.ListItems(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 2 || items[0].Code != "001" || items[1].Code != "002" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestListItemsBlankReferenceSkipsQuery(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, legacyConfig(), nil)

	items, err := svc.ListItems(context.Background(), "   ")
	if err != nil || len(items) != 0 {
		t.Fatalf("got %v %v", items, err)
	}
	if repo.itemCalls != 0 {
		t.Fatalf("repository queried %d times", repo.itemCalls)
	}
}

func TestInsertStampsAndWhitelistsSellerFields(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, legacyConfig(), nil)
	svc.clock = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	err := svc.Insert(context.Background(), NewSuggestion{
		Reference: " ABC123 ",
		Quantity:  5,
		Brand:     "Bosch",
		Type:      enums.SuggestionTypeVendaCasada,
		Comment:   "cliente pediu",
		ItemCode:  "001",
		Seller:    "Maria Silva",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got := repo.inserted
	if got == nil {
		t.Fatal("nothing inserted")
	}
	if got.Reference != "ABC123" || got.SubmissionStamp != "15/03/2024 09:30:00" {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.BuyerAction != "" || got.BuyerComment != "" || got.PurchaseOrder != "" {
		t.Fatalf("buyer columns written: %+v", got)
	}
}

func TestInsertPropagatesRepoError(t *testing.T) {
	repo := &stubRepo{insertErr: errors.New("disk full")}
	svc := NewService(repo, legacyConfig(), nil)

	if err := svc.Insert(context.Background(), NewSuggestion{Reference: "A"}); err == nil {
		t.Fatal("expected error")
	}
}
