package core

import "time"

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the wire format for transaction dates. Dates are stored as
// RFC 3339 strings so that lexicographic comparisons in the store match
// chronological order.
const DateLayout = time.RFC3339

type (
	TransactionType string

	// Money is an amount in minor currency units (cents). All arithmetic
	// stays in cents; only display code converts to a decimal.
	Money struct {
		Cents int64
	}

	// User is an account holder. PasswordHash is opaque to the ledger.
	User struct {
		ID           int64
		Username     string
		PasswordHash string
	}

	// Category is process-wide shared reference data. Titles are unique
	// case-insensitively.
	Category struct {
		ID    int64
		Title string
	}

	// Transaction is a single dated ledger entry owned by a user. Amount is
	// in minor currency units, always positive; the sign is implied by Type.
	Transaction struct {
		ID         int64
		Title      string
		Amount     int64
		Type       TransactionType
		CategoryID int64
		Date       string
		UserID     int64
	}

	// Stats aggregates a user's transactions over an optional date range.
	Stats struct {
		TotalIncome       int64
		TotalExpenses     int64
		TotalTransactions int64
		Balance           int64
		IncomeCount       int64
		ExpenseCount      int64
	}
)

// DefaultListLimit is the page size applied when a filter does not set one.
const DefaultListLimit = 50

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint"; Limit defaults to DefaultListLimit.
type TransactionFilter struct {
	Type       TransactionType
	CategoryID int64
	StartDate  string
	EndDate    string
	Search     string
	Limit      int
	Offset     int
}

// TransactionPage is one page of a filtered listing. Total counts all rows
// matching the filter before pagination, so callers can page through.
type TransactionPage struct {
	Items []Transaction
	Total int64
}

// TransactionPatch is a partial update for a transaction. Nil fields keep
// the stored value.
type TransactionPatch struct {
	Title      *string
	Amount     *int64
	Type       *TransactionType
	CategoryID *int64
	Date       *string
}

// IsZero reports whether the patch changes nothing.
func (p TransactionPatch) IsZero() bool {
	return p.Title == nil && p.Amount == nil && p.Type == nil && p.CategoryID == nil && p.Date == nil
}

// Apply merges the patch over t and returns the result. The merged value
// must be re-validated before it is persisted.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	return t
}

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Title *string
}

// Apply merges the patch over c and returns the result.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Title != nil {
		c.Title = *p.Title
	}
	return c
}

// ParsedDate returns the transaction date as a time.Time.
func (t Transaction) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}
