package embedded

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/require"
	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/db"
	"github.com/vendasul/sugestao-vendedor/pkg/db/models"
	"github.com/vendasul/sugestao-vendedor/pkg/enums"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/security"
)

func newTestGateway(t *testing.T) (*Gateway, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "sugestao.db")

	conn, release, err := db.OpenScoped(dsn, false)
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Suggestion{}, &models.UserCredential{}, &models.ReferenceItem{}))
	require.NoError(t, release())

	cfg := &config.Config{}
	cfg.DB.DSN = dsn
	cfg.Retry = config.RetryConfig{InsertAttempts: 5, InsertBackoff: 500 * time.Millisecond}
	cfg.Password = config.PasswordConfig{AllowLegacyPlaintext: true}

	gw, err := New(cfg, nil)
	require.NoError(t, err)
	return gw, dsn
}

func seed(t *testing.T, dsn string, records ...any) {
	t.Helper()
	conn, release, err := db.OpenScoped(dsn, false)
	require.NoError(t, err)
	defer release()
	for _, record := range records {
		require.NoError(t, conn.Create(record).Error)
	}
}

func TestAuthenticateAgainstHashedCredential(t *testing.T) {
	gw, dsn := newTestGateway(t)

	hash, err := security.HashPassword("s3nha", config.PasswordConfig{})
	require.NoError(t, err)
	seed(t, dsn, &models.UserCredential{Login: "maria", Password: hash, DisplayName: "Maria Silva"})

	result, err := gw.Authenticate(context.Background(), "maria", "s3nha")
	require.NoError(t, err)
	require.True(t, result.OK)
	require.Equal(t, "Maria Silva", result.DisplayName)

	result, err = gw.Authenticate(context.Background(), "maria", "errada")
	require.NoError(t, err)
	require.False(t, result.OK)
}

func TestAuthenticateLegacyPlaintextFallback(t *testing.T) {
	gw, dsn := newTestGateway(t)
	seed(t, dsn, &models.UserCredential{Login: "joao", Password: "legado"})

	result, err := gw.Authenticate(context.Background(), "joao", "legado")
	require.NoError(t, err)
	require.True(t, result.OK)
	// No NOME column value: display name falls back to the login.
	require.Equal(t, "joao", result.DisplayName)
}

func TestAuthenticateUnknownUserFailsClosed(t *testing.T) {
	gw, _ := newTestGateway(t)

	result, err := gw.Authenticate(context.Background(), "ghost", "whatever")
	require.NoError(t, err)
	require.False(t, result.OK)
}

func TestAuthenticateEmptyPasswordSkipsDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.DSN = filepath.Join(t.TempDir(), "missing.db")
	gw, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = gw.Authenticate(context.Background(), "maria", "")
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
}

func TestFetchSuggestionsEmptyTable(t *testing.T) {
	gw, _ := newTestGateway(t)

	records, err := gw.FetchSuggestions(context.Background())
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Len(t, records, 0)
}

func TestFetchItemsDeduplicates(t *testing.T) {
	gw, dsn := newTestGateway(t)
	seed(t, dsn,
		&models.ReferenceItem{Reference: "ABC123", Code: "001", Description: "Parafuso"},
		&models.ReferenceItem{Reference: "ABC123", Code: "001", Description: "Parafuso"},
		&models.ReferenceItem{Reference: "ABC123", Code: "002", Description: "Parafuso"},
		&models.ReferenceItem{Reference: "OUTRA", Code: "003", Description: "Porca"},
	)

	items, err := gw.FetchItemsForReference(context.Background(), "ABC123")
	require.NoError(t, err)
	require.Equal(t, []gateway.Item{
		{Code: "001", Description: "Parafuso"},
		{Code: "002", Description: "Parafuso"},
	}, items)
}

func TestFetchItemsBlankReferenceShortCircuits(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.DSN = filepath.Join(t.TempDir(), "missing.db")
	gw, err := New(cfg, nil)
	require.NoError(t, err)

	items, err := gw.FetchItemsForReference(context.Background(), "  ")
	require.NoError(t, err)
	require.Len(t, items, 0)
}

func TestInsertSuggestionWritesSellerFieldsAndStamp(t *testing.T) {
	gw, _ := newTestGateway(t)
	gw.clock = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) }

	err := gw.InsertSuggestion(context.Background(), gateway.SuggestionInput{
		Reference: "ABC123",
		Quantity:  5,
		Brand:     "Bosch",
		Type:      enums.SuggestionTypeVendaCasada,
		Seller:    "Maria Silva",
	})
	require.NoError(t, err)

	records, err := gw.FetchSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "15/03/2024 09:30:00", records[0]["DATA_LANCAMENTO"])
	require.Equal(t, "Maria Silva", records[0]["VENDEDOR"])
	// Buyer-side columns stay untouched on the write path.
	require.Equal(t, "", records[0]["ACAO_COMPRADOR"])
	require.Equal(t, "", records[0]["ORDEM_COMPRA"])
}

func TestInsertRetriesOnlyOnLockConflict(t *testing.T) {
	_, dsn := newTestGateway(t)

	// A short busy timeout makes each locked attempt fail fast.
	cfg := &config.Config{}
	cfg.DB.DSN = dsn + "?_busy_timeout=100"
	cfg.Retry = config.RetryConfig{InsertAttempts: 5, InsertBackoff: 500 * time.Millisecond}
	gw, err := New(cfg, nil)
	require.NoError(t, err)

	backoffCalls := 0
	gw.newBackoff = func() retry.Backoff {
		return retry.WithMaxRetries(4, retry.BackoffFunc(func() (time.Duration, bool) {
			backoffCalls++
			return 0, false
		}))
	}

	// Hold a write lock from a second connection.
	locker, release, err := db.OpenScoped(dsn, false)
	require.NoError(t, err)
	require.NoError(t, locker.Exec("BEGIN IMMEDIATE").Error)

	err = gw.InsertSuggestion(context.Background(), gateway.SuggestionInput{
		Reference: "ABC123",
		Quantity:  1,
		Brand:     "Bosch",
		Type:      enums.SuggestionTypeVendaPerdida,
		Seller:    "Maria",
	})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeLockConflict), "got %v", err)
	require.Equal(t, 4, backoffCalls)

	require.NoError(t, locker.Exec("ROLLBACK").Error)
	require.NoError(t, release())

	require.NoError(t, gw.InsertSuggestion(context.Background(), gateway.SuggestionInput{
		Reference: "ABC123",
		Quantity:  1,
		Brand:     "Bosch",
		Type:      enums.SuggestionTypeVendaPerdida,
		Seller:    "Maria",
	}))
}

func TestInsertNonLockErrorDoesNotRetry(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.DSN = filepath.Join(t.TempDir(), "empty.db")
	cfg.Retry = config.RetryConfig{InsertAttempts: 5, InsertBackoff: 500 * time.Millisecond}
	gw, err := New(cfg, nil)
	require.NoError(t, err)

	backoffCalls := 0
	gw.newBackoff = func() retry.Backoff {
		return retry.BackoffFunc(func() (time.Duration, bool) {
			backoffCalls++
			return 0, false
		})
	}

	// No tables exist in this file: the insert fails with a schema error,
	// which must surface immediately.
	err = gw.InsertSuggestion(context.Background(), gateway.SuggestionInput{
		Reference: "ABC123",
		Quantity:  1,
		Brand:     "Bosch",
		Type:      enums.SuggestionTypeVendaPerdida,
		Seller:    "Maria",
	})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency), "got %v", err)
	require.Equal(t, 0, backoffCalls)
}

func TestBackoffScheduleIsExponentialFromHalfSecond(t *testing.T) {
	gw, _ := newTestGateway(t)

	backoff := gw.newBackoff()
	want := []time.Duration{
		500 * time.Millisecond,
		time.Second,
		2 * time.Second,
		4 * time.Second,
	}
	for i, expected := range want {
		delay, stop := backoff.Next()
		require.False(t, stop, "backoff stopped early at step %d", i)
		require.Equal(t, expected, delay)
	}
	_, stop := backoff.Next()
	require.True(t, stop, "expected backoff to stop after 4 retries")
}

func TestCheckHealth(t *testing.T) {
	gw, _ := newTestGateway(t)
	require.True(t, gw.CheckHealth(context.Background()))

	cfg := &config.Config{}
	cfg.DB.DSN = filepath.Join(t.TempDir(), "does-not-exist", "x.db")
	broken, err := New(cfg, nil)
	require.NoError(t, err)
	require.False(t, broken.CheckHealth(context.Background()))
}
