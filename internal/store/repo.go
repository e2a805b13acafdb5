package store

import (
	"context"
	"errors"

	"github.com/vendasul/sugestao-vendedor/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for the intake API.
type Repository interface {
	ListSuggestions(ctx context.Context) ([]models.Suggestion, error)
	InsertSuggestion(ctx context.Context, suggestion *models.Suggestion) error
	FindUserByLogin(ctx context.Context, login string) (*models.UserCredential, error)
	ListItemsByReference(ctx context.Context, reference string) ([]models.ReferenceItem, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	suggestions := []models.Suggestion{}
	if err := r.db.WithContext(ctx).Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *repositoryImpl) InsertSuggestion(ctx context.Context, suggestion *models.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *repositoryImpl) FindUserByLogin(ctx context.Context, login string) (*models.UserCredential, error) {
	var user models.UserCredential
	err := r.db.WithContext(ctx).Where(`"LOGIN" = ?`, login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) ListItemsByReference(ctx context.Context, reference string) ([]models.ReferenceItem, error) {
	items := []models.ReferenceItem{}
	if err := r.db.WithContext(ctx).Where(`"REFERENCIA" = ?`, reference).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
