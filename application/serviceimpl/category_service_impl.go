package serviceimpl

import (
	"context"
	"errors"
	"strings"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
)

type CategoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) services.CategoryService {
	return &CategoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func (s *CategoryServiceImpl) ListCategories(ctx context.Context, userID int64) ([]*models.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, userID int64, name string) (*models.Category, error) {
	category := &models.Category{
		Name:   strings.TrimSpace(name),
		UserID: userID,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.ErrorContext(ctx, "Failed to create category", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *CategoryServiceImpl) UpdateCategory(ctx context.Context, userID, categoryID int64, name string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDForUser(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.WarnContext(ctx, "Category not found", "category_id", categoryID, "user_id", userID)
			return nil, services.ErrCategoryNotFound
		}
		return nil, err
	}

	category.Name = strings.TrimSpace(name)
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		logger.ErrorContext(ctx, "Failed to update category", "category_id", categoryID, "error", err)
		return nil, err
	}

	return category, nil
}

func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	if err := s.categoryRepo.Delete(ctx, categoryID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.WarnContext(ctx, "Category not found", "category_id", categoryID, "user_id", userID)
			return services.ErrCategoryNotFound
		}
		logger.ErrorContext(ctx, "Failed to delete category", "category_id", categoryID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Category deleted", "category_id", categoryID)
	return nil
}
