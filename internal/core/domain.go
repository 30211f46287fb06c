package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Category is one label from the fixed spending vocabulary. The set is
// closed: there are no user-defined categories.
type Category string

const (
	CategoryFoodDrink     Category = "Food & Drink"
	CategoryShopping      Category = "Shopping"
	CategoryHousing       Category = "Housing"
	CategoryTransport     Category = "Transport"
	CategoryTravel        Category = "Travel"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryIncome        Category = "Income"
	CategoryUtilities     Category = "Utilities"
	CategoryOther         Category = "Other"
)

// DefaultCategory is the single fallback used whenever a category is
// missing or unrecognized (form defaults and receipt extraction alike).
const DefaultCategory = CategoryOther

// Categories lists the full vocabulary in display order.
func Categories() []Category {
	return []Category{
		CategoryFoodDrink,
		CategoryShopping,
		CategoryHousing,
		CategoryTransport,
		CategoryTravel,
		CategoryEntertainment,
		CategoryHealth,
		CategoryIncome,
		CategoryUtilities,
		CategoryOther,
	}
}

// Valid reports whether c belongs to the vocabulary.
func (c Category) Valid() bool {
	switch c {
	case CategoryFoodDrink, CategoryShopping, CategoryHousing, CategoryTransport,
		CategoryTravel, CategoryEntertainment, CategoryHealth, CategoryIncome,
		CategoryUtilities, CategoryOther:
		return true
	}
	return false
}

// TransactionType distinguishes money in from money out. It is independent
// of category.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

const dateLayout = "2006-01-02"

type (
	// Date is a calendar day. Its JSON form is "YYYY-MM-DD".
	Date struct {
		time.Time
	}

	// Transaction is a single recorded income or expense event. Immutable
	// once created; removal is the only lifecycle operation.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      float64         `json:"amount"`
		Description string          `json:"description"`
		Category    Category        `json:"category"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
	}

	// Budget is a monthly spending ceiling for one category. At most one
	// budget exists per category.
	Budget struct {
		Category Category `json:"category"`
		Limit    float64  `json:"limit"`
	}

	// ReceiptData is the transient result of receipt extraction, used to
	// pre-fill a new expense transaction.
	ReceiptData struct {
		Amount      float64  `json:"amount"`
		Description string   `json:"description"`
		Category    Category `json:"category"`
		Date        Date     `json:"date"`
	}
)

var (
	ErrMissingID        = errors.New("missing transaction id")
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownType      = errors.New("unknown transaction type")
	ErrInvalidLimit     = errors.New("budget limit must be positive")
)

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses the "YYYY-MM-DD" wire form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks structural validity. Values failing validation must never
// enter the transaction collection.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if !(t.Amount > 0) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Category.Valid() {
		return ErrUnknownCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if !t.Type.Valid() {
		return ErrUnknownType
	}
	return nil
}

// Validate checks a budget before it is upserted. A non-positive limit is
// rejected rather than stored.
func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return ErrUnknownCategory
	}
	if !(b.Limit > 0) {
		return ErrInvalidLimit
	}
	return nil
}
