package category

import (
	"context"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type CategoryRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CategoryRepository {
	return &CategoryRepository{repository: r}
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	query := r.repository.GoquDBWrapper.From("categories").
		Select("id", "name").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &categories); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return r.findOne(ctx, goqu.Ex{"id": id}, id)
}

func (r *CategoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return r.findOne(ctx, goqu.Ex{"name": name}, name)
}

func (r *CategoryRepository) findOne(ctx context.Context, where goqu.Ex, key interface{}) (*models.Category, error) {
	var category models.Category

	found, err := r.repository.GoquDBWrapper.From("categories").
		Select("id", "name").
		Where(where).
		Executor().ScanStructContext(ctx, &category)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("category", key)
	}

	return &category, nil
}

func (r *CategoryRepository) PersistCategory(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{Name: name}

	query := r.repository.GoquDBWrapper.Insert("categories").
		Rows(goqu.Record{"name": name}).
		Returning("id")

	if _, err := query.Executor().ScanValContext(ctx, &category.ID); err != nil {
		return nil, custom_error.TranslateDBError(err)
	}

	return &category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, id int, name string) error {
	result, err := r.repository.GoquDBWrapper.Update("categories").
		Set(goqu.Record{"name": name}).
		Where(goqu.Ex{"id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return custom_error.TranslateDBError(err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return custom_error.NewNotFound("category", id)
	}

	return nil
}

func (r *CategoryRepository) HasAssets(ctx context.Context, id int) (bool, error) {
	var count int

	_, err := r.repository.GoquDBWrapper.From("assets").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"category_id": id}).
		Executor().ScanValContext(ctx, &count)
	if err != nil {
		return false, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return count > 0, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.repository.GoquDBWrapper.Delete("categories").
		Where(goqu.Ex{"id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return custom_error.TranslateDBError(err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return custom_error.NewNotFound("category", id)
	}

	return nil
}
