// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// categoryNames are the discussion categories created on every seed run.
var categoryNames = []string{
	"General", "Programming", "Music", "Movies", "Gaming",
	"Books", "Food", "Travel", "Science", "Sports",
	"Technology", "Art", "History", "Fitness", "Finance",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	categories, err := createOrGetCategories(db)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("%d categories available", len(categories))

	posts, err := createPosts(db, users, categories, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	commentCount, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", commentCount)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, post_participants, posts, categories, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One shared hash keeps seeding fast; every test user logs in with the
	// same password.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, i))

		user := models.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  string(hashed),
			FirstName: first,
			LastName:  last,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		dob := gofakeit.DateRange(
			time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC))
		profile := models.Profile{
			UserID:      user.ID,
			Bio:         gofakeit.Sentence(12),
			DateOfBirth: &dob,
			Photo:       fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}

		users = append(users, user)
	}
	return users, nil
}

func createOrGetCategories(db *gorm.DB) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		var category models.Category
		err := db.Where("name = ?", name).
			Attrs(models.Category{Description: gofakeit.Sentence(8)}).
			FirstOrCreate(&category, models.Category{Name: name}).Error
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func createPosts(db *gorm.DB, users []models.User, categories []models.Category, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := models.Post{
			Title:    gofakeit.Sentence(6),
			Body:     gofakeit.Paragraph(1, 4, 8, "\n"),
			AuthorID: author.ID,
		}
		// Roughly one in six posts stays uncategorized.
		if r.Intn(6) != 0 {
			category := categories[r.Intn(len(categories))]
			post.CategoryID = &category.ID
		}
		if r.Intn(3) == 0 {
			post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	count := 0
	for _, post := range posts {
		for i := 0; i < r.Intn(6); i++ {
			commenter := users[r.Intn(len(users))]
			comment := models.Comment{
				Body:   gofakeit.Sentence(10),
				PostID: post.ID,
				UserID: commenter.ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return count, err
			}

			err := db.Exec(
				`INSERT INTO post_participants (post_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				post.ID, commenter.ID).Error
			if err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
