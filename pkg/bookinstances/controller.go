package bookinstances

import (
	"context"
	"net/http"

	"github.com/locallibrary/catalog/pkg/books"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/metrics"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/views"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// View names.
const (
	ViewList   = "bookinstance_list"
	ViewDetail = "bookinstance_detail"
	ViewForm   = "bookinstance_form"
	ViewDelete = "bookinstance_delete"
)

const (
	titleList   = "Book Instance List"
	titleCreate = "Create BookInstance"
	titleUpdate = "Update Book Instance"
	titleDelete = "Delete Book Instance"

	messageCopyNotFound = "Book copy not found"
)

// Outcome distinguishes a completed operation from a submission that was sent
// back to the form.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeValidationFailed
)

// Request carries everything an operation reads from the HTTP request.
type Request struct {
	// ID is the :id path parameter.
	ID string
	// Payload is the create or update form.
	Payload *BookInstancePayload
	// DeleteID is the bookinstanceid field of the delete form.
	DeleteID string
	// Query filters the list page.
	Query *ListBookInstancesQuery
}

// Response is either a rendered view or a redirect.
type Response struct {
	Outcome  Outcome
	Status   int
	View     string
	Data     views.Data
	Redirect string
}

func render(view string, data views.Data) *Response {
	return &Response{Outcome: OutcomeSuccess, Status: http.StatusOK, View: view, Data: data}
}

func redirect(url string) *Response {
	return &Response{Outcome: OutcomeSuccess, Status: http.StatusFound, Redirect: url}
}

// Controller implements the book instance pages independently of echo.
type Controller struct {
	bookInstanceService *Service
	bookService         *books.Service
	metrics             *metrics.CatalogMetrics
}

func NewController(bookInstanceService *Service, bookService *books.Service, m *metrics.CatalogMetrics) *Controller {
	return &Controller{
		bookInstanceService: bookInstanceService,
		bookService:         bookService,
		metrics:             m,
	}
}

func (ctl *Controller) List(ctx context.Context, req Request) (*Response, error) {
	opts := ListBookInstancesOptions{}
	if req.Query != nil {
		if req.Query.Book != "" {
			opts.BookID = &req.Query.Book
		}
		if req.Query.Status != "" {
			opts.Status = &req.Query.Status
		}
	}

	bookInstances, err := ctl.bookInstanceService.ListBookInstances(ctx, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return render(ViewList, views.Data{
		"title":             titleList,
		"bookinstance_list": bookInstances,
	}), nil
}

func (ctl *Controller) Detail(ctx context.Context, req Request) (*Response, error) {
	bi, err := ctl.bookInstanceService.RetrieveBookInstance(ctx, RetrieveBookInstanceOptions{
		ID:       &req.ID,
		WithBook: true,
	})
	if err != nil {
		if errcodes.IsNotFound(err) {
			return nil, errcodes.NotFoundWithMessage(messageCopyNotFound)
		}
		return nil, errors.WithStack(err)
	}

	title := ""
	if bi.Book != nil {
		title = bi.Book.Title
	}

	return render(ViewDetail, views.Data{
		"title":        "Copy: " + title,
		"bookinstance": bi,
	}), nil
}

func (ctl *Controller) CreateForm(ctx context.Context, _ Request) (*Response, error) {
	bookList, err := ctl.bookChoices(ctx)
	if err != nil {
		return nil, err
	}

	return render(ViewForm, views.Data{
		"title":         titleCreate,
		"book_list":     bookList,
		"bookinstance":  &models.BookInstance{},
		"selected_book": "",
	}), nil
}

func (ctl *Controller) Create(ctx context.Context, req Request) (*Response, error) {
	payload := req.Payload
	if payload == nil {
		payload = &BookInstancePayload{Status: models.BookInstanceStatusMaintenance}
	}

	bi := payload.toModel("")
	if msgs := validate(payload, createRules); len(msgs) > 0 {
		ctl.metrics.IncValidationFailure(metrics.OperationCreate)

		bookList, err := ctl.bookChoices(ctx)
		if err != nil {
			return nil, err
		}

		resp := render(ViewForm, views.Data{
			"title":         titleCreate,
			"book_list":     bookList,
			"selected_book": bi.BookID,
			"errors":        msgs,
			"bookinstance":  bi,
		})
		resp.Outcome = OutcomeValidationFailed
		return resp, nil
	}

	if err := ctl.bookInstanceService.CreateBookInstance(ctx, bi); err != nil {
		return nil, errors.WithStack(err)
	}
	ctl.metrics.IncWrite(metrics.OperationCreate)

	return redirect(bi.URL()), nil
}

func (ctl *Controller) UpdateForm(ctx context.Context, req Request) (*Response, error) {
	bi, bookList, err := ctl.fetchForUpdate(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return render(ViewForm, views.Data{
		"title":         titleUpdate,
		"book_list":     bookList,
		"bookinstance":  bi,
		"selected_book": bi.BookID,
	}), nil
}

func (ctl *Controller) Update(ctx context.Context, req Request) (*Response, error) {
	payload := req.Payload
	if payload == nil {
		payload = &BookInstancePayload{Status: models.BookInstanceStatusMaintenance}
	}

	if msgs := validate(payload, updateRules); len(msgs) > 0 {
		ctl.metrics.IncValidationFailure(metrics.OperationUpdate)

		// The form is redrawn from what is stored, not from the rejected
		// submission.
		stored, bookList, err := ctl.fetchForUpdate(ctx, req.ID)
		if err != nil {
			return nil, err
		}

		resp := render(ViewForm, views.Data{
			"title":         titleUpdate,
			"book_list":     bookList,
			"bookinstance":  stored,
			"selected_book": stored.BookID,
			"errors":        msgs,
		})
		resp.Outcome = OutcomeValidationFailed
		return resp, nil
	}

	bi := payload.toModel(req.ID)
	if err := ctl.bookInstanceService.ReplaceBookInstance(ctx, bi); err != nil {
		return nil, errors.WithStack(err)
	}
	ctl.metrics.IncWrite(metrics.OperationUpdate)

	return redirect(bi.URL()), nil
}

func (ctl *Controller) DeleteForm(ctx context.Context, req Request) (*Response, error) {
	bi, err := ctl.bookInstanceService.RetrieveBookInstance(ctx, RetrieveBookInstanceOptions{
		ID: &req.ID,
	})
	if err != nil && !errcodes.IsNotFound(err) {
		return nil, errors.WithStack(err)
	}

	return render(ViewDelete, views.Data{
		"title":        titleDelete,
		"bookinstance": bi,
	}), nil
}

func (ctl *Controller) Delete(ctx context.Context, req Request) (*Response, error) {
	if req.DeleteID != "" {
		if err := ctl.bookInstanceService.DeleteBookInstance(ctx, req.DeleteID); err != nil {
			return nil, errors.WithStack(err)
		}
		ctl.metrics.IncWrite(metrics.OperationDelete)
	}

	return redirect(models.BookInstancesURL()), nil
}

// bookChoices lists every book, projected to what the book select needs.
func (ctl *Controller) bookChoices(ctx context.Context) ([]*models.Book, error) {
	bookList, err := ctl.bookService.ListBooks(ctx, books.ListBooksOptions{
		Columns: []string{"id", "title"},
	})
	return bookList, errors.WithStack(err)
}

// fetchForUpdate loads the copy and the full book list in parallel. The first
// failure cancels the other read.
func (ctl *Controller) fetchForUpdate(ctx context.Context, id string) (*models.BookInstance, []*models.Book, error) {
	var (
		bi       *models.BookInstance
		bookList []*models.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bi, err = ctl.bookInstanceService.RetrieveBookInstance(gctx, RetrieveBookInstanceOptions{
			ID:       &id,
			WithBook: true,
		})
		return err
	})
	g.Go(func() error {
		var err error
		bookList, err = ctl.bookService.ListBooks(gctx, books.ListBooksOptions{})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return bi, bookList, nil
}
