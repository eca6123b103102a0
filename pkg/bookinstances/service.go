package bookinstances

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const resourceName = "Book instance"

type RetrieveBookInstanceOptions struct {
	ID *string
	// WithBook resolves the Book relation.
	WithBook bool
}

type ListBookInstancesOptions struct {
	BookID *string
	Status *string
}

// replaceColumns are the fields an update overwrites.
var replaceColumns = []string{"book_id", "imprint", "status", "due_back"}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBookInstance(ctx context.Context, bi *models.BookInstance) error {
	now := time.Now()
	if bi.CreatedAt.IsZero() {
		bi.CreatedAt = now
	}
	bi.UpdatedAt = bi.CreatedAt

	if bi.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		bi.ID = id.String()
	}

	_, err := svc.db.
		NewInsert().
		Model(bi).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBookInstance(ctx context.Context, opts RetrieveBookInstanceOptions) (*models.BookInstance, error) {
	bi := &models.BookInstance{}

	q := svc.db.
		NewSelect().
		Model(bi)

	if opts.WithBook {
		q = q.Relation("Book")
	}
	if opts.ID != nil {
		q = q.Where("bi.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound(resourceName)
		}
		return nil, errors.WithStack(err)
	}

	return bi, nil
}

// ListBookInstances returns every copy with its book resolved.
func (svc *Service) ListBookInstances(ctx context.Context, opts ListBookInstancesOptions) ([]*models.BookInstance, error) {
	var bookInstances []*models.BookInstance

	q := svc.db.
		NewSelect().
		Model(&bookInstances).
		Relation("Book").
		Order("bi.created_at ASC", "bi.id ASC")

	if opts.BookID != nil {
		q = q.Where("bi.book_id = ?", *opts.BookID)
	}
	if opts.Status != nil {
		q = q.Where("bi.status = ?", *opts.Status)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return bookInstances, nil
}

// ReplaceBookInstance overwrites every mutable field of the stored copy with
// the values on bi. bi.ID selects the row and is never changed.
func (svc *Service) ReplaceBookInstance(ctx context.Context, bi *models.BookInstance) error {
	bi.UpdatedAt = time.Now()
	columns := append(append([]string{}, replaceColumns...), "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(bi).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound(resourceName)
	}
	return nil
}

// DeleteBookInstance removes the copy. Deleting an id that doesn't exist is
// not an error.
func (svc *Service) DeleteBookInstance(ctx context.Context, id string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.BookInstance)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
