package book

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/bookstore/internal/domain"
	"github.com/simp-lee/bookstore/internal/pkg"
)

// BookHandler handles REST requests for the book resource.
type BookHandler struct {
	svc domain.BookService
}

// NewBookHandler creates a BookHandler and registers the custom
// validation rules its request bodies rely on.
func NewBookHandler(svc domain.BookService) *BookHandler {
	pkg.RegisterValidators()
	return &BookHandler{svc: svc}
}

// Get handles GET /books/:id.
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.svc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Search handles GET /books/?name=&isbn=&page=&size=.
func (h *BookHandler) Search(c *gin.Context) {
	filter := domain.BookFilter{
		Name: c.Query("name"),
		ISBN: c.Query("isbn"),
	}

	result, err := h.svc.SearchBooks(c.Request.Context(), filter, pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create handles POST /books/.
func (h *BookHandler) Create(c *gin.Context) {
	var req SaveBookRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	book, err := h.svc.SaveBook(c.Request.Context(), req.toBook())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update handles PUT /books/.
func (h *BookHandler) Update(c *gin.Context) {
	var req UpdateBookRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), req.toBook())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		pkg.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
