package book

import (
	"strings"

	"github.com/simp-lee/bookstore/internal/domain"
)

// filterableFields lists the book fields a predicate may reference.
var filterableFields = []string{domain.BookFieldID, domain.BookFieldName, domain.BookFieldISBN}

// sortableFields lists the book fields a search may be ordered by.
var sortableFields = []string{domain.BookFieldID, domain.BookFieldName, domain.BookFieldISBN}

// BuildPredicate turns a search filter into a store predicate. Blank fields
// are ignored; a name matches as a case-insensitive substring, an ISBN
// exactly, and both must hold when both are given.
func BuildPredicate(f domain.BookFilter) domain.Predicate {
	pred := domain.MatchAll()
	if name := strings.TrimSpace(f.Name); name != "" {
		pred = pred.And(domain.ContainsFold(domain.BookFieldName, name))
	}
	if isbn := strings.TrimSpace(f.ISBN); isbn != "" {
		pred = pred.And(domain.Equals(domain.BookFieldISBN, isbn))
	}
	return pred
}
