package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Book instance statuses. The set is enforced by a CHECK constraint on the
// book_instances table.
const (
	BookInstanceStatusAvailable   = "Available"
	BookInstanceStatusMaintenance = "Maintenance"
	BookInstanceStatusLoaned      = "Loaned"
	BookInstanceStatusReserved    = "Reserved"
)

const (
	bookInstanceCollectionURL = "/catalog/bookinstances"
	bookInstanceURLPrefix     = "/catalog/bookinstance/"
	dueBackDisplayLayout      = "Jan 2, 2006"
	dueBackInputLayout        = "2006-01-02"
)

// BookInstanceStatuses lists the statuses in the order they are offered in
// forms.
var BookInstanceStatuses = []string{
	BookInstanceStatusMaintenance,
	BookInstanceStatusAvailable,
	BookInstanceStatusLoaned,
	BookInstanceStatusReserved,
}

// BookInstance is a physical copy of a book.
type BookInstance struct {
	bun.BaseModel `bun:"table:book_instances,alias:bi"`

	ID        string     `bun:",pk" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	BookID    string     `bun:",nullzero" json:"book_id"`
	Book      *Book      `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	Imprint   string     `bun:",nullzero" json:"imprint"`
	Status    string     `bun:",nullzero" json:"status"`
	DueBack   *time.Time `json:"due_back"`
}

// BookInstancesURL is the collection page every delete redirects to.
func BookInstancesURL() string {
	return bookInstanceCollectionURL
}

// URL is the canonical detail page of the copy.
func (bi *BookInstance) URL() string {
	return bookInstanceURLPrefix + bi.ID
}

func (bi *BookInstance) IsAvailable() bool {
	return bi.Status == BookInstanceStatusAvailable
}

// DueBackFormatted renders the due date for display, or "" when unset.
func (bi *BookInstance) DueBackFormatted() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.UTC().Format(dueBackDisplayLayout)
}

// DueBackYYYYMMDD renders the due date as the value of a date input.
func (bi *BookInstance) DueBackYYYYMMDD() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.UTC().Format(dueBackInputLayout)
}
