package books

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/books-api/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "books.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func cervantes() *entities.Book {
	return &entities.Book{Autor: "Cervantes", ISBN: 123, Editorial: "Planeta", Paginas: 863}
}

func TestRepository_CreateBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	t.Run("assigns a fresh id", func(t *testing.T) {
		book := cervantes()
		require.NoError(t, repo.CreateBook(book))

		assert.NotZero(t, book.ID)
		assert.Equal(t, "Cervantes", book.Autor)
		assert.Equal(t, 123, book.ISBN)
		assert.Equal(t, "Planeta", book.Editorial)
		assert.Equal(t, 863, book.Paginas)
	})

	t.Run("ignores a client supplied id", func(t *testing.T) {
		first := cervantes()
		require.NoError(t, repo.CreateBook(first))

		second := cervantes()
		second.ID = first.ID
		require.NoError(t, repo.CreateBook(second))

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("allows duplicate isbn", func(t *testing.T) {
		a := &entities.Book{ISBN: 999}
		b := &entities.Book{ISBN: 999}
		require.NoError(t, repo.CreateBook(a))
		require.NoError(t, repo.CreateBook(b))
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestRepository_GetBookByID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	t.Run("returns nil without error for missing row", func(t *testing.T) {
		book, err := repo.GetBookByID(42)
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("returns the stored row", func(t *testing.T) {
		created := cervantes()
		require.NoError(t, repo.CreateBook(created))

		found, err := repo.GetBookByID(created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, *created, *found)
	})
}

func TestRepository_GetAllBooks(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	t.Run("returns empty non-nil slice", func(t *testing.T) {
		books, err := repo.GetAllBooks()
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("returns rows in id order", func(t *testing.T) {
		require.NoError(t, repo.CreateBook(&entities.Book{Autor: "A"}))
		require.NoError(t, repo.CreateBook(&entities.Book{Autor: "B"}))

		books, err := repo.GetAllBooks()
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "A", books[0].Autor)
		assert.Equal(t, "B", books[1].Autor)
		assert.Less(t, books[0].ID, books[1].ID)
	})
}

func TestRepository_UpdateBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	t.Run("partial update keeps other fields", func(t *testing.T) {
		book := cervantes()
		require.NoError(t, repo.CreateBook(book))

		require.NoError(t, repo.UpdateBook(book, map[string]any{"paginas": 300}))

		assert.Equal(t, 300, book.Paginas)
		assert.Equal(t, "Cervantes", book.Autor)
		assert.Equal(t, 123, book.ISBN)
		assert.Equal(t, "Planeta", book.Editorial)

		stored, err := repo.GetBookByID(book.ID)
		require.NoError(t, err)
		assert.Equal(t, *book, *stored)
	})

	t.Run("zero values are written when supplied", func(t *testing.T) {
		book := cervantes()
		require.NoError(t, repo.CreateBook(book))

		require.NoError(t, repo.UpdateBook(book, map[string]any{"autor": "", "isbn": 0}))

		assert.Equal(t, "", book.Autor)
		assert.Equal(t, 0, book.ISBN)
		assert.Equal(t, 863, book.Paginas)
	})

	t.Run("empty field map leaves row untouched", func(t *testing.T) {
		book := cervantes()
		require.NoError(t, repo.CreateBook(book))

		require.NoError(t, repo.UpdateBook(book, map[string]any{}))

		assert.Equal(t, "Cervantes", book.Autor)
	})
}

func TestRepository_DeleteBook(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	book := cervantes()
	require.NoError(t, repo.CreateBook(book))

	require.NoError(t, repo.DeleteBook(book.ID))

	found, err := repo.GetBookByID(book.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	total, err := repo.CountBooks()
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
