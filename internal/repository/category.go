package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	// List returns categories in insertion order, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]*models.Category, error)
	// Search filters categories whose name contains q case-insensitively.
	Search(ctx context.Context, q string) ([]*models.Category, error)
	// Delete removes the category and nulls the reference on its posts.
	// The posts themselves are never deleted.
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCategorySidebar(ctx)
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, limit int) ([]*models.Category, error) {
	var categories []*models.Category
	db := r.db.WithContext(ctx).Order("id")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) Search(ctx context.Context, q string) ([]*models.Category, error) {
	like := "%" + strings.ToLower(q) + "%"
	var categories []*models.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", like).
		Order("id").
		Find(&categories).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	var postIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("category_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCategorySidebar(ctx)
	// Cached post payloads embed the category; drop them too.
	for _, postID := range postIDs {
		cache.InvalidatePost(ctx, postID)
	}
	return nil
}
