package core

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User-facing validation messages.
const (
	MsgDescriptionRequired = "Description is required"
	MsgAmountRequired      = "Amount is required"
	MsgAmountNotPositive   = "Amount must be a positive number"
)

// ErrFormInvalid is returned when a transaction form fails validation and
// no mutation may proceed.
var ErrFormInvalid = errors.New("transaction form is invalid")

type (
	// TransactionForm carries raw add-transaction input. Touched flags track
	// which fields the user has interacted with: they control only whether a
	// field's error message is surfaced, never whether submission is allowed.
	TransactionForm struct {
		Amount      string `json:"amount"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Date        string `json:"date"`
		Type        string `json:"type"`

		AmountTouched      bool `json:"-"`
		DescriptionTouched bool `json:"-"`
	}

	// FieldErrors maps field name to its validation message.
	FieldErrors map[string]string
)

// TouchAll marks every validated field as touched. Called on submit so all
// errors become visible.
func (f *TransactionForm) TouchAll() {
	f.AmountTouched = true
	f.DescriptionTouched = true
}

// Errors returns the messages to display, honoring touched state.
func (f TransactionForm) Errors() FieldErrors {
	errs := make(FieldErrors)
	if f.DescriptionTouched && strings.TrimSpace(f.Description) == "" {
		errs["description"] = MsgDescriptionRequired
	}
	if f.AmountTouched {
		if _, err := ParseAmount(f.Amount); err != nil {
			if errors.Is(err, ErrAmountNotPositive) {
				errs["amount"] = MsgAmountNotPositive
			} else {
				errs["amount"] = MsgAmountRequired
			}
		}
	}
	return errs
}

// SubmitReady reports whether the form may be submitted. Unlike Errors it
// ignores touched state entirely.
func (f TransactionForm) SubmitReady() bool {
	if strings.TrimSpace(f.Description) == "" {
		return false
	}
	_, err := ParseAmount(f.Amount)
	return err == nil
}

// Build turns a valid form into a new Transaction, applying defaults for
// optional fields: category falls back to DefaultCategory, date to now's
// calendar day, type to expense. The id is freshly generated.
func (f TransactionForm) Build(now time.Time) (Transaction, error) {
	if !f.SubmitReady() {
		return Transaction{}, ErrFormInvalid
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Transaction{}, ErrFormInvalid
	}

	category := Category(strings.TrimSpace(f.Category))
	if !category.Valid() {
		category = DefaultCategory
	}

	date := DateOf(now)
	if s := strings.TrimSpace(f.Date); s != "" {
		parsed, err := ParseDate(s)
		if err != nil {
			return Transaction{}, ErrInvalidDate
		}
		date = parsed
	}

	typ := TypeExpense
	if s := strings.TrimSpace(f.Type); s != "" {
		typ = TransactionType(s)
		if !typ.Valid() {
			return Transaction{}, ErrUnknownType
		}
	}

	tx := Transaction{
		ID:          uuid.New().String(),
		Amount:      amount,
		Description: strings.TrimSpace(f.Description),
		Category:    category,
		Date:        date,
		Type:        typ,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// FormFromReceipt pre-fills an add-transaction form from extracted receipt
// data. The type is always expense and both validated fields start touched,
// mirroring a scan-then-review flow.
func FormFromReceipt(r ReceiptData) TransactionForm {
	return TransactionForm{
		Amount:             formatAmount(r.Amount),
		Description:        r.Description,
		Category:           string(r.Category),
		Date:               r.Date.String(),
		Type:               string(TypeExpense),
		AmountTouched:      true,
		DescriptionTouched: true,
	}
}

// formatAmount renders an amount with the two-decimal display convention.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
