package repository

import (
	"context"
	"regexp"
	"testing"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	post := &models.Post{Title: "Hello", Body: "World", AuthorID: 1}
	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE "posts"\."id" = \$1`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.GetByID(ctx, 99)
	assert.Nil(t, post)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CountSearch(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" LEFT JOIN categories`).
		WithArgs("%go%", "%go%", "%go%", "%go%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountSearch(ctx, "Go")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_CountSearch_EmptyTermMatchesAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// An empty term degenerates to %% which every row's LOWER() matches.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" LEFT JOIN categories`).
		WithArgs("%%", "%%", "%%", "%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountSearch(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Search_LowercasesTheTerm(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT (.+) FROM "posts" LEFT JOIN categories`).
		WithArgs("%docker%", "%docker%", "%docker%", "%docker%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author_id"}).
			AddRow(1, "Docker tips", 7))

	// Preloads for Author and Category.
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "alice"))

	posts, err := repo.Search(ctx, "DOCKER", 5, 0)
	assert.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Docker tips", posts[0].Title)
	assert.Equal(t, "alice", posts[0].Author.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Participants(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM "users" JOIN post_participants`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow(1, "alice").
			AddRow(2, "bob"))

	users, err := repo.Participants(ctx, 9)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddParticipant(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO post_participants`)).
		WithArgs(9, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddParticipant(ctx, 9, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_AddParticipant_IdempotentOnConflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// The second insert touches no rows; it still succeeds.
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO post_participants`)).
		WithArgs(9, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddParticipant(ctx, 9, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_RemovesCommentsInSameTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`UPDATE "posts" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 9)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete_RollsBackOnCommentFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "deleted_at"`).
		WillReturnError(&mockPgError{msg: "connection reset"})
	mock.ExpectRollback()

	err := repo.Delete(ctx, 9)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
