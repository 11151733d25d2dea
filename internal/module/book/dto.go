package book

import (
	"strings"

	"github.com/simp-lee/bookstore/internal/domain"
)

// SaveBookRequest is the POST body. An id is optional; when present the
// record is written under that id. A null or empty isbn means absent.
type SaveBookRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required,notblank"`
	ISBN string `json:"isbn" binding:"isbnlen"`
}

// UpdateBookRequest is the PUT body. The whole record is replaced.
type UpdateBookRequest struct {
	ID   string `json:"id" binding:"required,notblank"`
	Name string `json:"name" binding:"required,notblank"`
	ISBN string `json:"isbn" binding:"isbnlen"`
}

func (r SaveBookRequest) toBook() *domain.Book {
	return newBook(r.ID, r.Name, r.ISBN)
}

func (r UpdateBookRequest) toBook() *domain.Book {
	return newBook(r.ID, r.Name, r.ISBN)
}

func newBook(id, name, isbn string) *domain.Book {
	return &domain.Book{
		ID:   strings.TrimSpace(id),
		Name: name,
		ISBN: normalizeISBN(&isbn),
	}
}

// normalizeISBN trims the value and maps blank to nil.
func normalizeISBN(isbn *string) *string {
	if isbn == nil {
		return nil
	}
	v := strings.TrimSpace(*isbn)
	if v == "" {
		return nil
	}
	return &v
}
