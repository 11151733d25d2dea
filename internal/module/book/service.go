package book

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/bookstore/internal/domain"
	"github.com/simp-lee/bookstore/internal/pkg"
)

var tracer = otel.Tracer("github.com/simp-lee/bookstore/internal/module/book")

// bookService implements domain.BookService.
type bookService struct {
	repo domain.BookRepository
	log  *slog.Logger
}

// NewBookService creates a BookService backed by repo.
func NewBookService(repo domain.BookRepository, log *slog.Logger) domain.BookService {
	if log == nil {
		log = slog.Default()
	}
	return &bookService{repo: repo, log: log}
}

// GetBook returns the book with the given id or domain.ErrNotFound.
func (s *bookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// SearchBooks returns one page of the books matching filter. The window
// read and the total count run concurrently as separate store round trips,
// so under concurrent writes the totals may briefly disagree with the items.
// A page past the largest addressable offset only runs the count.
func (s *bookService) SearchBooks(ctx context.Context, filter domain.BookFilter, page domain.PageRequest) (*domain.BookPage, error) {
	page = pkg.NormalizePageRequest(page)
	page.Sort = pkg.NormalizeSort(page.Sort, sortableFields)
	pred := BuildPredicate(filter)

	ctx, span := tracer.Start(ctx, "book.search")
	defer span.End()
	span.SetAttributes(
		attribute.Int("page.index", page.Page),
		attribute.Int("page.size", page.PageSize),
		attribute.String("page.sort", page.Sort.Field),
		attribute.Bool("page.sort_desc", page.Sort.Desc),
		attribute.Int("predicate.conditions", len(pred.Conditions())),
	)

	var (
		books []domain.Book
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	if !page.Unreachable() {
		g.Go(func() error {
			var err error
			books, err = s.repo.Find(gctx, pred, page)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, pred)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	if books == nil {
		books = []domain.Book{}
	}
	span.SetAttributes(attribute.Int64("result.total", total))

	return &domain.BookPage{
		CurrentPage: page.Page,
		TotalPages:  pkg.TotalPages(total, page.PageSize),
		TotalItems:  total,
		Books:       books,
	}, nil
}

// SaveBook stores book. Without an id the store assigns one; with an id
// the record under that id is created or overwritten.
func (s *bookService) SaveBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := validateBook(book); err != nil {
		return nil, err
	}
	book.ID = strings.TrimSpace(book.ID)
	book.ISBN = normalizeISBN(book.ISBN)

	if book.ID == "" {
		if err := s.repo.Insert(ctx, book); err != nil {
			return nil, err
		}
	} else if err := s.repo.Replace(ctx, book); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book saved", slog.String("book_id", book.ID))
	return book, nil
}

// UpdateBook replaces the stored record with book. Unknown ids yield
// domain.ErrNotFound instead of creating a record.
func (s *bookService) UpdateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := validateBook(book); err != nil {
		return nil, err
	}
	book.ID = strings.TrimSpace(book.ID)
	if book.ID == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "id is required", nil)
	}
	book.ISBN = normalizeISBN(book.ISBN)

	if _, err := s.repo.GetByID(ctx, book.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, book); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "book updated", slog.String("book_id", book.ID))
	return book, nil
}

// DeleteBook removes the book with the given id. Unknown ids yield
// domain.ErrNotFound.
func (s *bookService) DeleteBook(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "book deleted", slog.String("book_id", id))
	return nil
}

func validateBook(book *domain.Book) error {
	if book == nil {
		return domain.NewAppError(domain.CodeValidation, "book is required", nil)
	}
	if strings.TrimSpace(book.Name) == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if book.ISBN != nil && !pkg.ValidISBNLength(*book.ISBN) {
		return domain.NewAppError(domain.CodeValidation, "isbn must be 11 to 13 characters", nil)
	}
	return nil
}
