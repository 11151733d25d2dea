package pkg

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/bookstore/internal/domain"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ParsePageRequest reads the zero-based "page", the "size" and the "sort"
// query parameters. Missing or malformed values fall back to the defaults.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = DefaultPage
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = DefaultPageSize
	}
	return NormalizePageRequest(domain.PageRequest{
		Page:     page,
		PageSize: size,
		Sort:     ParseSort(c.Query("sort")),
	})
}

// ParseSort reads "field", "field,dir" or "field:dir" where dir is asc or
// desc. Anything else yields the default order.
func ParseSort(raw string) domain.SortOrder {
	raw = strings.TrimSpace(raw)
	sep := ","
	if !strings.Contains(raw, sep) {
		sep = ":"
	}
	field, dir, _ := strings.Cut(raw, sep)
	field = strings.TrimSpace(field)
	if !validFieldName.MatchString(field) {
		return domain.SortOrder{}
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		return domain.SortOrder{Field: field}
	case "desc":
		return domain.SortOrder{Field: field, Desc: true}
	default:
		return domain.SortOrder{}
	}
}

// NormalizeSort replaces a sort on a field outside allowed with the default.
func NormalizeSort(s domain.SortOrder, allowed []string) domain.SortOrder {
	if s.Field == "" || !validFieldName.MatchString(s.Field) || !slices.Contains(allowed, s.Field) {
		return domain.SortOrder{}
	}
	return s
}

// NormalizePageRequest clamps req into the accepted range.
func NormalizePageRequest(req domain.PageRequest) domain.PageRequest {
	if req.Page < 0 {
		req.Page = DefaultPage
	}
	if req.PageSize < 1 {
		req.PageSize = DefaultPageSize
	}
	if req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}
	return req
}

// TotalPages returns ceil(total/pageSize); no items means no pages.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET for the page window.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}

// Order returns a GORM scope that sorts by s and breaks ties by ascending
// id. Fields outside allowed are ignored.
func Order(s domain.SortOrder, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		order := NormalizeSort(s, allowed)
		if order.Field == "" || order.Field == domain.BookFieldID {
			return db.Order(clause.OrderByColumn{Column: clause.Column{Name: domain.BookFieldID}, Desc: order.Desc})
		}
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: order.Field}, Desc: order.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: domain.BookFieldID}})
	}
}

// Where returns a GORM scope that compiles pred into WHERE conditions.
// Fields outside allowed, or with unsafe names, poison the statement with
// an error instead of being dropped, so a bad predicate never widens a query.
func Where(pred domain.Predicate, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range pred.Conditions() {
			if !validFieldName.MatchString(cond.Field) || !slices.Contains(allowed, cond.Field) {
				_ = db.AddError(fmt.Errorf("field %q is not filterable", cond.Field))
				return db
			}
			switch cond.Op {
			case domain.OpEquals:
				db = db.Where(cond.Field+" = ?", cond.Value)
			case domain.OpContainsFold:
				db = db.Where(containsFoldSQL(db.Dialector.Name(), cond.Field), "%"+likeEscaper.Replace(strings.ToLower(cond.Value))+"%")
			default:
				_ = db.AddError(fmt.Errorf("unsupported operator %s on field %q", cond.Op, cond.Field))
				return db
			}
		}
		return db
	}
}

// containsFoldSQL returns a case-insensitive LIKE clause for field. The
// operand is expected lowered. Postgres folds with ILIKE; SQLite's LOWER
// only folds ASCII, so the unicode_lower function is used there.
func containsFoldSQL(dialect, field string) string {
	switch dialect {
	case "postgres":
		return field + ` ILIKE ? ESCAPE '\'`
	case "sqlite":
		return sqliteFoldFunc + "(" + field + `) LIKE ? ESCAPE '\'`
	default:
		return "LOWER(" + field + `) LIKE ? ESCAPE '\'`
	}
}
