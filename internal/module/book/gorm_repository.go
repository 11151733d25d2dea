package book

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/bookstore/internal/domain"
	"github.com/simp-lee/bookstore/internal/pkg"
)

// gormRepository implements domain.BookRepository on a relational database.
type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a BookRepository backed by db.
func NewGormRepository(db *gorm.DB) domain.BookRepository {
	return &gormRepository{db: db}
}

// AutoMigrate creates or updates the books table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Book{})
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&book).Error; err != nil {
		return nil, mapError(err)
	}
	return &book, nil
}

func (r *gormRepository) Find(ctx context.Context, pred domain.Predicate, page domain.PageRequest) ([]domain.Book, error) {
	var books []domain.Book
	err := r.db.WithContext(ctx).
		Scopes(pkg.Where(pred, filterableFields), pkg.Order(page.Sort, sortableFields), pkg.Paginate(page)).
		Find(&books).Error
	if err != nil {
		return nil, mapError(err)
	}
	return books, nil
}

func (r *gormRepository) Count(ctx context.Context, pred domain.Predicate) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Book{}).
		Scopes(pkg.Where(pred, filterableFields)).
		Count(&total).Error
	if err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// Insert assigns a time-ordered UUID when book.ID is empty.
func (r *gormRepository) Insert(ctx context.Context, book *domain.Book) error {
	if book.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return domain.NewAppError(domain.CodeInternal, "failed to generate id", err)
		}
		book.ID = id.String()
	}
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gormRepository) Replace(ctx context.Context, book *domain.Book) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(book).Error
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Book{}).Error; err != nil {
		return mapError(err)
	}
	return nil
}

func (r *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return mapError(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return domain.NewAppError(domain.CodeUnavailable, "database unreachable", err)
	}
	return nil
}

// mapError converts GORM and driver errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "book already exists", err)
	}
	if isUnavailableError(err) {
		return domain.NewAppError(domain.CodeUnavailable, "database unreachable", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by message, since
// the pure-Go SQLite driver does not translate them to gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

func isUnavailableError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
