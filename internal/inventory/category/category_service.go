package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	PersistCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, name string) error
	HasAssets(ctx context.Context, id int) (bool, error)
	DeleteCategory(ctx context.Context, id int) error
}

type CategoryService struct {
	repository Repository
}

func NewCategoryService(r Repository) *CategoryService {
	return &CategoryService{repository: r}
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.repository.GetCategories(ctx)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	return s.repository.PersistCategory(ctx, name)
}

// EnsureCategory returns the category with the given name, creating it when
// missing. The seed command relies on it being idempotent.
func (s *CategoryService) EnsureCategory(ctx context.Context, name string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	category, err := s.repository.GetCategoryByName(ctx, name)
	if err == nil {
		return category, nil
	}
	var notFound *custom_error.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	return s.repository.PersistCategory(ctx, name)
}

func (s *CategoryService) RenameCategory(ctx context.Context, id int, name string) (*models.Category, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	if err := s.repository.UpdateCategory(ctx, id, name); err != nil {
		return nil, err
	}

	return &models.Category{ID: id, Name: name}, nil
}

// DeleteCategory refuses while any asset still belongs to the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	inUse, err := s.repository.HasAssets(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return custom_error.NewInUse(fmt.Sprintf("category %d still has assets", id))
	}

	return s.repository.DeleteCategory(ctx, id)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", custom_error.NewValidation("name", "is required")
	}
	if len(name) > 100 {
		return "", custom_error.NewValidation("name", "must be at most 100 characters")
	}
	return name, nil
}
