// Package embedded implements the DataGateway against a local database
// file, for deployments without the intake API service.
package embedded

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/vendasul/sugestao-vendedor/internal/gateway"
	"github.com/vendasul/sugestao-vendedor/pkg/config"
	"github.com/vendasul/sugestao-vendedor/pkg/db"
	"github.com/vendasul/sugestao-vendedor/pkg/db/models"
	pkgerrors "github.com/vendasul/sugestao-vendedor/pkg/errors"
	"github.com/vendasul/sugestao-vendedor/pkg/logger"
	"github.com/vendasul/sugestao-vendedor/pkg/security"
)

const stampLayout = "02/01/2006 15:04:05"

// Gateway talks to the embedded database directly. Every logical operation
// opens its own connection and releases it before returning; reads use the
// read-only flag to stay out of writers' way.
type Gateway struct {
	dsn        string
	retryCfg   config.RetryConfig
	passCfg    config.PasswordConfig
	logg       *logger.Logger
	clock      func() time.Time
	newBackoff func() retry.Backoff
}

// New builds the embedded gateway from configuration.
func New(cfg *config.Config, logg *logger.Logger) (*Gateway, error) {
	g := &Gateway{
		dsn:      cfg.DB.DSN,
		retryCfg: cfg.Retry,
		passCfg:  cfg.Password,
		logg:     logg,
		clock:    time.Now,
	}
	g.newBackoff = func() retry.Backoff {
		attempts := g.retryCfg.InsertAttempts
		if attempts < 1 {
			attempts = 1
		}
		base := g.retryCfg.InsertBackoff
		if base <= 0 {
			base = 500 * time.Millisecond
		}
		return retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(base))
	}
	return g, nil
}

var _ gateway.DataGateway = (*Gateway)(nil)

func (g *Gateway) Authenticate(ctx context.Context, login, password string) (gateway.AuthResult, error) {
	if !gateway.CredentialsPresent(login, password) {
		return gateway.AuthResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "login and password are required")
	}

	conn, release, err := db.OpenScoped(g.dsn, true)
	if err != nil {
		return gateway.AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open database")
	}
	defer release()

	var user models.UserCredential
	result := conn.WithContext(ctx).Where(`"LOGIN" = ?`, strings.TrimSpace(login)).Limit(1).Find(&user)
	if result.Error != nil {
		return gateway.AuthResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "query credentials")
	}
	if result.RowsAffected == 0 || user.Password == "" {
		return gateway.AuthResult{}, nil
	}

	ok, legacy, err := security.VerifyCredential(password, user.Password, g.passCfg)
	if err != nil {
		if g.logg != nil {
			g.logg.Error(ctx, "credential verification failed", err)
		}
		return gateway.AuthResult{}, nil
	}
	if legacy && g.logg != nil {
		g.logg.Warn(g.logg.WithSeller(ctx, user.Login), "credential matched via legacy plaintext comparison")
	}
	if !ok {
		return gateway.AuthResult{}, nil
	}

	displayName := user.DisplayName
	if displayName == "" {
		displayName = user.Login
	}
	return gateway.AuthResult{OK: true, DisplayName: displayName}, nil
}

func (g *Gateway) FetchSuggestions(ctx context.Context) ([]gateway.RawRecord, error) {
	conn, release, err := db.OpenScoped(g.dsn, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open database")
	}
	defer release()

	suggestions := []models.Suggestion{}
	if err := conn.WithContext(ctx).Find(&suggestions).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query suggestions")
	}

	records := make([]gateway.RawRecord, 0, len(suggestions))
	for _, s := range suggestions {
		records = append(records, rawRecord(s))
	}
	return records, nil
}

func (g *Gateway) FetchItemsForReference(ctx context.Context, reference string) ([]gateway.Item, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return []gateway.Item{}, nil
	}

	conn, release, err := db.OpenScoped(g.dsn, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open database")
	}
	defer release()

	rows := []models.ReferenceItem{}
	if err := conn.WithContext(ctx).Where(`"REFERENCIA" = ?`, reference).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query reference items")
	}

	items := make([]gateway.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, gateway.Item{Code: row.Code, Description: row.Description})
	}
	return gateway.DedupeItems(items), nil
}

// InsertSuggestion writes one suggestion row. Lock contention from another
// process is retried with exponential backoff (base 0.5s, 5 attempts);
// every other failure surfaces immediately.
func (g *Gateway) InsertSuggestion(ctx context.Context, input gateway.SuggestionInput) error {
	suggestion := models.Suggestion{
		Reference:       input.Reference,
		Quantity:        input.Quantity,
		Brand:           input.Brand,
		SuggestionType:  input.Type.String(),
		SellerComment:   input.Comment,
		Seller:          input.Seller,
		ItemCode:        input.ItemCode,
		ItemDescription: input.ItemDescription,
		SubmissionStamp: g.clock().Format(stampLayout),
	}

	err := retry.Do(ctx, g.newBackoff(), func(ctx context.Context) error {
		conn, release, err := db.OpenScoped(g.dsn, false)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open database")
		}
		defer release()

		if err := conn.WithContext(ctx).Create(&suggestion).Error; err != nil {
			if db.IsLockConflict(err) {
				return retry.RetryableError(err)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert suggestion")
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if db.IsLockConflict(err) {
		return pkgerrors.Wrap(pkgerrors.CodeLockConflict, err, "suggestion table locked after retries")
	}
	return err
}

func (g *Gateway) CheckHealth(ctx context.Context) bool {
	conn, release, err := db.OpenScoped(g.dsn, true)
	if err != nil {
		return false
	}
	defer release()

	var one int
	return conn.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error == nil
}

func rawRecord(s models.Suggestion) gateway.RawRecord {
	return gateway.RawRecord{
		"REFERENCIA":           s.Reference,
		"QUANTIDADE":           strconv.Itoa(s.Quantity),
		"MARCA":                s.Brand,
		"TIPO_SUGESTAO":        s.SuggestionType,
		"COMENTARIO_VENDEDOR":  s.SellerComment,
		"VENDEDOR":             s.Seller,
		"ACAO_COMPRADOR":       s.BuyerAction,
		"COMENTARIO_COMPRADOR": s.BuyerComment,
		"ORDEM_COMPRA":         s.PurchaseOrder,
		"CODIGO":               s.ItemCode,
		"DESCRICAO_CODIGO":     s.ItemDescription,
		"DATA_LANCAMENTO":      s.SubmissionStamp,
	}
}
