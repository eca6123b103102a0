package testutils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db          *bun.DB
	bookService *books.Service
}

// createBookRequest is the request body for creating a test book.
type createBookRequest struct {
	Title   string  `json:"title" mod:"trim" validate:"required"`
	Summary *string `json:"summary"`
	ISBN    *string `json:"isbn"`
}

// createBook creates a book that book instances can reference.
// POST /test/books.
func (h *handler) createBook(c echo.Context) error {
	ctx := c.Request().Context()

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:   req.Title,
		Summary: req.Summary,
		ISBN:    req.ISBN,
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.Wrap(err, "failed to create book")
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

// deleteCatalogResponse is the response body for wiping the catalog.
type deleteCatalogResponse struct {
	BookInstances int `json:"book_instances"`
	Books         int `json:"books"`
}

// deleteCatalog deletes every book instance and book.
// DELETE /test/catalog.
func (h *handler) deleteCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	// Copies first (foreign key constraint)
	result, err := h.db.NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete book instances")
	}
	instances, _ := result.RowsAffected()

	result, err = h.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete books")
	}
	deleted, _ := result.RowsAffected()

	return errors.WithStack(c.JSON(http.StatusOK, deleteCatalogResponse{
		BookInstances: int(instances),
		Books:         int(deleted),
	}))
}
