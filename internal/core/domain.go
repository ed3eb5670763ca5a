package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"

	// Monthly is the only goal period supported.
	Monthly Period = "monthly"

	maxDescriptionLen = 200
)

type (
	Kind   string
	Period string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a recorded money movement. It is never mutated after
	// the ledger accepts it.
	Transaction struct {
		ID          string
		Kind        Kind
		Amount      Money
		Category    string
		Description string
		Date        Date
	}

	// NewTransaction carries the caller-supplied fields of a transaction.
	// A zero Date means "today" for the ledger clock.
	NewTransaction struct {
		Kind        Kind
		Amount      Money
		Category    string
		Description string
		Date        Date
	}

	// Goal is a monthly target. Category is empty for income goals.
	Goal struct {
		ID       string
		Kind     Kind
		Category string
		Amount   Money
		Period   Period
	}

	NewGoal struct {
		Kind     Kind
		Category string
		Amount   Money
	}
)

var (
	ErrValidation    = errors.New("validation error")
	ErrDuplicateGoal = errors.New("goal already exists")
	ErrNotFound      = errors.New("not found")

	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrEmptyDescription   = fmt.Errorf("%w: empty description", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description too long (max %d characters)", ErrValidation, maxDescriptionLen)
	ErrInvalidKind        = fmt.Errorf("%w: invalid kind", ErrValidation)
	ErrUnknownCategory    = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrMissingCategory    = fmt.Errorf("%w: missing category", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date", ErrValidation)
)

// ParseKind accepts "income" or "expense", case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (k Kind) String() string {
	return string(k)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// Validate accepts amounts in (0, MaxAmountCents].
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmountCents {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the transaction fields against the catalog.
func (t NewTransaction) Validate(c Catalog) error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrMissingCategory
	}
	if !c.Contains(t.Kind, t.Category) {
		return fmt.Errorf("%w: %q is not a %s category", ErrUnknownCategory, t.Category, t.Kind)
	}
	return nil
}

// Validate checks the goal fields against the catalog. The category of an
// income goal is ignored.
func (g NewGoal) Validate(c Catalog) error {
	if err := g.Kind.Validate(); err != nil {
		return err
	}
	if err := g.Amount.Validate(); err != nil {
		return err
	}
	if g.Kind == Income {
		return nil
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrMissingCategory
	}
	if !c.Contains(Expense, g.Category) {
		return fmt.Errorf("%w: %q is not an expense category", ErrUnknownCategory, g.Category)
	}
	return nil
}
