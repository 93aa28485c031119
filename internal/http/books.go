package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/books-api/internal/audit"
	"github.com/mrlokans/books-api/internal/entities"
)

const (
	messageBookNotFound = "Book not found"
	messageBookDeleted  = "Book deleted"
)

// BookInput is the request body for create and update. Pointer fields tell
// "not supplied" apart from a zero value, so PUT can merge partially.
type BookInput struct {
	Autor     *string `json:"autor" form:"autor"`
	ISBN      *int    `json:"isbn" form:"isbn"`
	Editorial *string `json:"editorial" form:"editorial"`
	Paginas   *int    `json:"paginas" form:"paginas"`
}

// Fields returns the supplied values keyed by column name.
func (in BookInput) Fields() map[string]any {
	fields := make(map[string]any)
	if in.Autor != nil {
		fields["autor"] = *in.Autor
	}
	if in.ISBN != nil {
		fields["isbn"] = *in.ISBN
	}
	if in.Editorial != nil {
		fields["editorial"] = *in.Editorial
	}
	if in.Paginas != nil {
		fields["paginas"] = *in.Paginas
	}
	return fields
}

// Book builds a new entity from the supplied values; the rest stay zero.
func (in BookInput) Book() *entities.Book {
	book := &entities.Book{}
	if in.Autor != nil {
		book.Autor = *in.Autor
	}
	if in.ISBN != nil {
		book.ISBN = *in.ISBN
	}
	if in.Editorial != nil {
		book.Editorial = *in.Editorial
	}
	if in.Paginas != nil {
		book.Paginas = *in.Paginas
	}
	return book
}

type BooksController struct {
	store        BookStore
	auditService *audit.Service
}

// NewBooksController creates the books controller. auditService may be nil.
func NewBooksController(store BookStore, auditService *audit.Service) *BooksController {
	return &BooksController{
		store:        store,
		auditService: auditService,
	}
}

// bindBookInput decodes a JSON or URL-encoded body. An empty body is an empty input.
func bindBookInput(c *gin.Context) (BookInput, bool) {
	var input BookInput
	if err := c.ShouldBind(&input); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, err.Error())
		return BookInput{}, false
	}
	return input, true
}

func requestInfo(c *gin.Context) audit.RequestInfo {
	return audit.RequestInfo{
		RequestID: GetRequestID(c),
		IPAddress: c.ClientIP(),
	}
}

// findBook resolves :id to a stored book. A nil book with ok=true means absent.
func (controller *BooksController) findBook(c *gin.Context, context string) (*entities.Book, bool) {
	id, valid := lookupIDParam(c, "id")
	if !valid {
		return nil, true
	}
	book, err := controller.store.GetBookByID(id)
	if err != nil {
		respondInternalError(c, err, context)
		return nil, false
	}
	return book, true
}

// ListBooks returns every book as a JSON array.
// GET /books
func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// GetBook returns the book or a JSON null with 200 when it does not exist.
// GET /books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	book, ok := controller.findBook(c, "get book")
	if !ok {
		return
	}
	// No 404 here, unlike PUT and DELETE: absence is reported as null.
	c.JSON(http.StatusOK, book)
}

// CreateBook inserts a book from the request body.
// POST /books
func (controller *BooksController) CreateBook(c *gin.Context) {
	input, ok := bindBookInput(c)
	if !ok {
		return
	}

	book := input.Book()
	if err := controller.store.CreateBook(book); err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	if controller.auditService != nil {
		controller.auditService.LogCreate(book, requestInfo(c))
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook merges the supplied fields into an existing book.
// PUT /books/:id
func (controller *BooksController) UpdateBook(c *gin.Context) {
	book, ok := controller.findBook(c, "update book")
	if !ok {
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": messageBookNotFound})
		return
	}

	input, ok := bindBookInput(c)
	if !ok {
		return
	}

	fields := input.Fields()
	if err := controller.store.UpdateBook(book, fields); err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	if controller.auditService != nil {
		controller.auditService.LogUpdate(book, fields, requestInfo(c))
	}

	c.JSON(http.StatusOK, book)
}

// DeleteBook permanently removes an existing book.
// DELETE /books/:id
func (controller *BooksController) DeleteBook(c *gin.Context) {
	book, ok := controller.findBook(c, "delete book")
	if !ok {
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": messageBookNotFound})
		return
	}

	if err := controller.store.DeleteBook(book.ID); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	if controller.auditService != nil {
		controller.auditService.LogDelete(book, requestInfo(c))
	}

	respondSuccess(c, messageBookDeleted)
}
