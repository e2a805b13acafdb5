package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendasul/sugestao-vendedor/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Suggestion{}, &models.UserCredential{}, &models.ReferenceItem{}))
	return conn
}

func TestListSuggestionsEmptyIsNotNil(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	suggestions, err := repo.ListSuggestions(context.Background())
	require.NoError(t, err)
	require.NotNil(t, suggestions)
	require.Len(t, suggestions, 0)
}

func TestInsertAndListSuggestions(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	err := repo.InsertSuggestion(context.Background(), &models.Suggestion{
		Reference:      "ABC123",
		Quantity:       5,
		Brand:          "Bosch",
		SuggestionType: "VENDA_CASADA",
		Seller:         "Maria",
	})
	require.NoError(t, err)

	suggestions, err := repo.ListSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, "ABC123", suggestions[0].Reference)
	require.Equal(t, "Maria", suggestions[0].Seller)
}

func TestFindUserByLoginNotFound(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	user, err := repo.FindUserByLogin(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestListItemsByReference(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)

	require.NoError(t, conn.Create(&models.ReferenceItem{Reference: "ABC123", Code: "001", Description: "Parafuso"}).Error)
	require.NoError(t, conn.Create(&models.ReferenceItem{Reference: "XYZ", Code: "002", Description: "Porca"}).Error)

	items, err := repo.ListItemsByReference(context.Background(), "ABC123")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "001", items[0].Code)
}
