// Package books provides database operations for the books table.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(1) // nil, nil when the row does not exist
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/books-api/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllBooks retrieves every stored book ordered by ID.
func (r *Repository) GetAllBooks() ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// GetBookByID retrieves a book by primary key.
// A missing row is not an error: it returns nil, nil.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook inserts a new row. Any ID on the input is discarded; the store assigns one.
func (r *Repository) CreateBook(book *entities.Book) error {
	book.ID = 0
	return r.db.Create(book).Error
}

// UpdateBook merges the given columns into an existing row and reloads book from the store.
// Keys are column names (autor, isbn, editorial, paginas); unknown keys are ignored by GORM.
func (r *Repository) UpdateBook(book *entities.Book, fields map[string]any) error {
	if len(fields) > 0 {
		if err := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(fields).Error; err != nil {
			return fmt.Errorf("update book %d: %w", book.ID, err)
		}
	}
	return r.db.First(book, book.ID).Error
}

// DeleteBook permanently removes a row.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}

// CountBooks returns the number of stored books.
func (r *Repository) CountBooks() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Book{}).Count(&total).Error
	return total, err
}
