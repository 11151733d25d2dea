package pkg

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	minISBNLength = 11
	maxISBNLength = 13
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator:
//
//	notblank  string is not empty after trimming whitespace
//	isbnlen   string is blank, or 11 to 13 characters after trimming
//
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("isbnlen", isbnLen)
	})
}

// ValidISBNLength reports whether isbn, once trimmed, is absent or holds
// 11 to 13 characters.
func ValidISBNLength(isbn string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(isbn))
	return n == 0 || (n >= minISBNLength && n <= maxISBNLength)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isbnLen(fl validator.FieldLevel) bool {
	return ValidISBNLength(fl.Field().String())
}
