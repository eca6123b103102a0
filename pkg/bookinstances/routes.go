package bookinstances

import (
	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/metrics"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the book instance pages on the catalog
// group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, m *metrics.CatalogMetrics) {
	bookInstanceService := NewService(db)
	bookService := books.NewService(db)

	h := &handler{
		controller: NewController(bookInstanceService, bookService, m),
	}

	g.GET("/bookinstances", h.list)
	g.GET("/bookinstance/create", h.createForm)
	g.POST("/bookinstance/create", h.create, allowEmptyBody)
	g.GET("/bookinstance/:id", h.detail)
	g.GET("/bookinstance/:id/update", h.updateForm)
	g.POST("/bookinstance/:id/update", h.update, allowEmptyBody)
	g.GET("/bookinstance/:id/delete", h.deleteForm)
	g.POST("/bookinstance/:id/delete", h.deleteBookInstance, allowEmptyBody)
}
