package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error)
	// Search returns posts whose category name, title, body or author
	// username contains q case-insensitively. An empty q matches every post.
	Search(ctx context.Context, q string, limit, offset int) ([]*models.Post, error)
	CountSearch(ctx context.Context, q string) (int64, error)
	Participants(ctx context.Context, postID uint) ([]models.User, error)
	// AddParticipant records that the user commented on the post. Safe to
	// call repeatedly; the add is idempotent.
	AddParticipant(ctx context.Context, postID, userID uint) error
	Update(ctx context.Context, post *models.Post) error
	// Delete removes the post and its comments in one transaction.
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Category").
			First(&post, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("author_id = ?", authorID).
		Order("updated_at DESC, created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applySearch appends the free-text filter across category name, title, body
// and author username. LOWER/LIKE is used rather than ILIKE so the same query
// runs on both PostgreSQL and SQLite.
func (r *postRepository) applySearch(db *gorm.DB, q string) *gorm.DB {
	like := "%" + strings.ToLower(q) + "%"
	return db.
		Joins("LEFT JOIN categories ON categories.id = posts.category_id").
		Joins("JOIN users ON users.id = posts.author_id").
		Where(
			"LOWER(categories.name) LIKE ? OR LOWER(posts.title) LIKE ? OR LOWER(posts.body) LIKE ? OR LOWER(users.username) LIKE ?",
			like, like, like, like,
		)
}

func (r *postRepository) Search(ctx context.Context, q string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applySearch(r.db.WithContext(ctx).Model(&models.Post{}), q).
		Preload("Author").
		Preload("Category").
		Order("posts.updated_at DESC, posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountSearch(ctx context.Context, q string) (int64, error) {
	var count int64
	err := r.applySearch(r.db.WithContext(ctx).Model(&models.Post{}), q).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) Participants(ctx context.Context, postID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN post_participants ON post_participants.user_id = users.id").
		Where("post_participants.post_id = ?", postID).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *postRepository) AddParticipant(ctx context.Context, postID, userID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING keeps the add idempotent under
	// concurrent comment submissions.
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO post_participants (post_id, user_id)
		 VALUES (?, ?)
		 ON CONFLICT DO NOTHING`,
		postID, userID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}
