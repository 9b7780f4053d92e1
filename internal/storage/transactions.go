package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tally/internal/core"
	applog "tally/internal/log"
)

const transactionColumns = "id, title, amount, type, category_id, date, user_id"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	err := row.Scan(&t.ID, &t.Title, &t.Amount, &t.Type, &t.CategoryID, &t.Date, &t.UserID)
	return t, err
}

// userExists confirms the foreign user row before a transaction write.
func (r *Repository) userExists(ctx context.Context, id int64) error {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id = ?", id).Scan(&n); err != nil {
		return core.NewTransactionError(core.CodeQueryFailed, "failed to resolve user", err)
	}
	if n == 0 {
		return core.NewNotFoundError("User", id)
	}
	return nil
}

// categoryExists confirms the foreign category row before a transaction write.
func (r *Repository) categoryExists(ctx context.Context, id int64) error {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories WHERE id = ?", id).Scan(&n); err != nil {
		return core.NewTransactionError(core.CodeQueryFailed, "failed to resolve category", err)
	}
	if n == 0 {
		return core.NewNotFoundError("Category", id)
	}
	return nil
}

// CreateTransaction validates t, confirms its foreign keys and inserts it.
// Nothing is written unless every check passes.
func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := core.ValidateTransaction(t); err != nil {
		return core.Transaction{}, err
	}
	if err := r.userExists(ctx, t.UserID); err != nil {
		return core.Transaction{}, err
	}
	if err := r.categoryExists(ctx, t.CategoryID); err != nil {
		return core.Transaction{}, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO transactions (title, amount, type, category_id, date, user_id) VALUES (?, ?, ?, ?, ?, ?)",
		t.Title, t.Amount, string(t.Type), t.CategoryID, t.Date, t.UserID)
	if err != nil {
		return core.Transaction{}, core.NewTransactionError(core.CodeWriteFailed, "failed to create transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, core.NewTransactionError(core.CodeWriteFailed, "failed to create transaction", err)
	}
	t.ID = id

	r.log.InfoContext(ctx, "transaction created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTxID, t.ID,
		applog.FieldUserID, t.UserID,
		applog.FieldTxType, string(t.Type),
		applog.FieldAmountCents, t.Amount)
	return t, nil
}

// GetTransaction fetches a transaction by id, scoped to its owner. A row
// belonging to another user is reported as not found; ownership is part of
// the lookup predicate.
func (r *Repository) GetTransaction(ctx context.Context, id, userID int64) (core.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.NewNotFoundError("Transaction", id)
	}
	if err != nil {
		return core.Transaction{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch transaction", err)
	}
	return t, nil
}

// buildFilter translates f into a WHERE clause with bind args. The same
// predicate backs listing and, without search, the statistics queries.
func buildFilter(userID int64, f core.TransactionFilter) (string, []any) {
	where := []string{"user_id = ?"}
	args := []any{userID}

	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.CategoryID > 0 {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, f.EndDate)
	}
	if f.Search != "" {
		where = append(where, "title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	return strings.Join(where, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// ListTransactions returns one page of a user's transactions, most recent
// first, along with the total count before pagination.
func (r *Repository) ListTransactions(ctx context.Context, userID int64, f core.TransactionFilter) (core.TransactionPage, error) {
	if f.Limit <= 0 {
		f.Limit = core.DefaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where, args := buildFilter(userID, f)

	var page core.TransactionPage
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE "+where, args...).Scan(&page.Total)
	if err != nil {
		return core.TransactionPage{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch transactions", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE "+where+
			" ORDER BY date DESC LIMIT ? OFFSET ?",
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return core.TransactionPage{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch transactions", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return core.TransactionPage{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch transactions", err)
		}
		page.Items = append(page.Items, t)
	}
	if err := rows.Err(); err != nil {
		return core.TransactionPage{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch transactions", err)
	}
	return page, nil
}

// UpdateTransaction loads the owner's row, merges the patch, re-validates
// the merged result and persists only the patched columns. A changed
// category is re-confirmed against the categories table.
func (r *Repository) UpdateTransaction(ctx context.Context, id, userID int64, patch core.TransactionPatch) (core.Transaction, error) {
	existing, err := r.GetTransaction(ctx, id, userID)
	if err != nil {
		return core.Transaction{}, err
	}
	if patch.IsZero() {
		return existing, nil
	}

	merged := patch.Apply(existing)
	if err := core.ValidateTransaction(merged); err != nil {
		return core.Transaction{}, err
	}
	if patch.CategoryID != nil && *patch.CategoryID != existing.CategoryID {
		if err := r.categoryExists(ctx, *patch.CategoryID); err != nil {
			return core.Transaction{}, err
		}
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Amount != nil {
		set = append(set, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.Type != nil {
		set = append(set, "type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.Date != nil {
		set = append(set, "date = ?")
		args = append(args, *patch.Date)
	}
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(set, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return core.Transaction{}, core.NewTransactionError(core.CodeUpdateFailed, "failed to update transaction", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return core.Transaction{}, core.NewTransactionError(core.CodeUpdateFailed, "failed to update transaction", err)
	}

	r.log.InfoContext(ctx, "transaction updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldTxID, id,
		applog.FieldUserID, userID)
	return merged, nil
}

// DeleteTransaction removes the owner's row. A zero-row delete after the
// existence check succeeded is a consistency anomaly and is surfaced as a
// TransactionError rather than swallowed.
func (r *Repository) DeleteTransaction(ctx context.Context, id, userID int64) error {
	if _, err := r.GetTransaction(ctx, id, userID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return core.NewTransactionError(core.CodeDeleteFailed, "failed to delete transaction", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return core.NewTransactionError(core.CodeDeleteFailed, "failed to delete transaction", err)
	}

	r.log.InfoContext(ctx, "transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTxID, id,
		applog.FieldUserID, userID)
	return nil
}
