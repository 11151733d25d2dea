package book

import "github.com/gin-gonic/gin"

// BookModule mounts the book resource on a router group.
type BookModule struct {
	handler *BookHandler
}

// NewModule creates a BookModule. Panics if h is nil.
func NewModule(h *BookHandler) *BookModule {
	if h == nil {
		panic("book.NewModule: handler must not be nil")
	}
	return &BookModule{handler: h}
}

// RegisterRoutes registers the /books routes on r.
func (m *BookModule) RegisterRoutes(r gin.IRouter) {
	books := r.Group("/books")
	books.GET("/", m.handler.Search)
	books.GET("/:id", m.handler.Get)
	books.POST("/", m.handler.Create)
	books.PUT("/", m.handler.Update)
	books.DELETE("/:id", m.handler.Delete)
}
