package bookinstances

import (
	"time"

	"github.com/locallibrary/catalog/pkg/binder"
	"github.com/locallibrary/catalog/pkg/models"
)

// BookInstancePayload is the create/update form. Strings are trimmed and
// HTML-escaped while binding; an empty status falls back to Maintenance.
type BookInstancePayload struct {
	Book    string `form:"book" json:"book" mod:"trim,escape"`
	Imprint string `form:"imprint" json:"imprint" mod:"trim,escape"`
	Status  string `form:"status" json:"status" mod:"trim,escape" default:"Maintenance"`
	DueBack string `form:"due_back" json:"due_back" mod:"trim"`
}

// ListBookInstancesQuery narrows the list page to one book or one status.
type ListBookInstancesQuery struct {
	Book   string `query:"book" json:"book" mod:"trim"`
	Status string `query:"status" json:"status" mod:"trim" validate:"omitempty,oneof=Available Maintenance Loaned Reserved"`
}

// DeleteBookInstancePayload is the body of the delete confirmation form.
type DeleteBookInstancePayload struct {
	BookInstanceID string `form:"bookinstanceid" json:"bookinstanceid" mod:"trim"`
}

// Validation messages shown on the form.
const (
	MessageBookRequired    = "Book must be specified"
	MessageImprintRequired = "Imprint must be specified"
	MessageInvalidDate     = "Invalid date"
	MessageDateRequired    = "Add a date."
)

// rule inspects a payload and returns the messages for whatever it finds
// wrong.
type rule func(p *BookInstancePayload) []string

var (
	createRules = []rule{requireBook, requireImprint, validDueBack, requireDueBackUnlessAvailable}
	// Updates don't require a due date for unavailable copies.
	updateRules = []rule{requireBook, requireImprint, validDueBack}
)

func requireBook(p *BookInstancePayload) []string {
	if p.Book == "" {
		return []string{MessageBookRequired}
	}
	return nil
}

func requireImprint(p *BookInstancePayload) []string {
	if p.Imprint == "" {
		return []string{MessageImprintRequired}
	}
	return nil
}

func validDueBack(p *BookInstancePayload) []string {
	if p.DueBack != "" && !binder.IsISO8601(p.DueBack) {
		return []string{MessageInvalidDate}
	}
	return nil
}

// requireDueBackUnlessAvailable looks at the converted date, so an
// unparseable due_back counts as missing here as well as invalid.
func requireDueBackUnlessAvailable(p *BookInstancePayload) []string {
	if p.dueBack() == nil && p.Status != models.BookInstanceStatusAvailable {
		return []string{MessageDateRequired}
	}
	return nil
}

// validate runs every rule in order and concatenates their messages.
func validate(p *BookInstancePayload, rules []rule) []string {
	var msgs []string
	for _, r := range rules {
		msgs = append(msgs, r(p)...)
	}
	return msgs
}

// dueBack converts the submitted due date. Empty and unparseable values are
// both absent.
func (p *BookInstancePayload) dueBack() *time.Time {
	if p.DueBack == "" {
		return nil
	}
	t, err := binder.ParseISO8601(p.DueBack)
	if err != nil {
		return nil
	}
	return &t
}

// toModel builds the (unsaved) copy described by the payload.
func (p *BookInstancePayload) toModel(id string) *models.BookInstance {
	return &models.BookInstance{
		ID:      id,
		BookID:  p.Book,
		Imprint: p.Imprint,
		Status:  p.Status,
		DueBack: p.dueBack(),
	}
}
