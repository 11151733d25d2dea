package book

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simp-lee/bookstore/internal/domain"
)

func strPtr(s string) *string { return &s }

// SeedBooks is the starter catalog written by Seed.
var SeedBooks = []domain.Book{
	{ID: "1", Name: "The Little Prince", ISBN: strPtr("9786059681001")},
	{ID: "2", Name: "Animal Farm", ISBN: strPtr("9786257678322")},
}

// Seed upserts SeedBooks. Running it twice leaves the same two records.
func Seed(ctx context.Context, repo domain.BookRepository, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	for _, b := range SeedBooks {
		if b.ISBN != nil {
			b.ISBN = strPtr(*b.ISBN)
		}
		if err := repo.Replace(ctx, &b); err != nil {
			return fmt.Errorf("seed book %s: %w", b.ID, err)
		}
	}
	log.InfoContext(ctx, "catalog seeded", slog.Int("books", len(SeedBooks)))
	return nil
}
