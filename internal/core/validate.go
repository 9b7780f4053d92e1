package core

import (
	"strings"
	"time"
)

// MaxCategoryTitleLen bounds category titles after trimming.
const MaxCategoryTitleLen = 50

// ValidateTransaction checks field-level rules on t. Checks run in a fixed
// order (title, amount, type, categoryId, userId, date) and the first
// failure wins. Referential checks against the store are the repository's
// concern, not this function's.
func ValidateTransaction(t Transaction) error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "title is required")
	}
	if t.Amount <= 0 {
		return NewValidationError("amount", "amount must be greater than 0")
	}
	if t.Type != Income && t.Type != Expense {
		return NewValidationError("type", "type must be either 'income' or 'expense'")
	}
	if t.CategoryID <= 0 {
		return NewValidationError("categoryId", "valid category is required")
	}
	if t.UserID <= 0 {
		return NewValidationError("userId", "valid user is required")
	}
	if t.Date == "" {
		return NewValidationError("date", "date is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return NewValidationError("date", "invalid date format")
	}
	return nil
}

// ValidateCategory checks field-level rules on c. Titles are compared and
// stored trimmed.
func ValidateCategory(c Category) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return NewValidationError("title", "category title is required")
	}
	if len([]rune(title)) > MaxCategoryTitleLen {
		return NewValidationError("title", "category title must be at most 50 characters")
	}
	return nil
}

// ValidateUser checks field-level rules on u before registration.
func ValidateUser(u User) error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "username is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password", "password is required")
	}
	return nil
}
