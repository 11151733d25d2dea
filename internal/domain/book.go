package domain

import "context"

// Document field names shared by every store.
const (
	BookFieldID   = "id"
	BookFieldName = "name"
	BookFieldISBN = "isbn"
)

// Book is a catalog record. ID is assigned by the store on first insert
// and never changes afterwards.
type Book struct {
	ID   string  `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name string  `gorm:"size:255" bson:"name" json:"name"`
	ISBN *string `gorm:"column:isbn;size:13;index" bson:"isbn,omitempty" json:"isbn"`
}

// BookFilter carries the optional search fields of a catalog query.
// Blank values mean the filter was not supplied.
type BookFilter struct {
	Name string
	ISBN string
}

// BookPage is one page of search results.
type BookPage struct {
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalItems  int64  `json:"totalItems"`
	Books       []Book `json:"books"`
}

// BookRepository is the document-store contract for books.
type BookRepository interface {
	GetByID(ctx context.Context, id string) (*Book, error)
	// Find returns the window of matches selected by page, ordered by id.
	Find(ctx context.Context, pred Predicate, page PageRequest) ([]Book, error)
	// Count returns the number of matches ignoring any window.
	Count(ctx context.Context, pred Predicate) (int64, error)
	// Insert stores a new book, assigning an ID when book.ID is empty.
	Insert(ctx context.Context, book *Book) error
	// Replace overwrites the document keyed by book.ID, creating it if absent.
	Replace(ctx context.Context, book *Book) error
	// Delete removes the document keyed by id. Missing ids are not an error.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// BookService defines the catalog operations exposed to transports.
type BookService interface {
	GetBook(ctx context.Context, id string) (*Book, error)
	SearchBooks(ctx context.Context, filter BookFilter, page PageRequest) (*BookPage, error)
	SaveBook(ctx context.Context, book *Book) (*Book, error)
	UpdateBook(ctx context.Context, book *Book) (*Book, error)
	DeleteBook(ctx context.Context, id string) error
}
