package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tally/internal/core"
	applog "tally/internal/log"
)

// categoryTitleTaken reports whether any category other than excludeID
// carries the given title, compared case-insensitively.
func (r *Repository) categoryTitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE LOWER(title) = LOWER(?) AND id != ?",
		title, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateCategory validates and inserts a category. Titles are stored
// trimmed and must be unique case-insensitively.
func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := core.ValidateCategory(c); err != nil {
		return core.Category{}, err
	}
	c.Title = strings.TrimSpace(c.Title)

	taken, err := r.categoryTitleTaken(ctx, c.Title, 0)
	if err != nil {
		return core.Category{}, core.NewTransactionError(core.CodeQueryFailed, "failed to create category", err)
	}
	if taken {
		return core.Category{}, core.NewValidationError("title", "category with this title already exists")
	}

	res, err := r.db.ExecContext(ctx, "INSERT INTO categories (title) VALUES (?)", c.Title)
	if err != nil {
		return core.Category{}, core.NewTransactionError(core.CodeWriteFailed, "failed to create category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, core.NewTransactionError(core.CodeWriteFailed, "failed to create category", err)
	}
	c.ID = id

	r.log.InfoContext(ctx, "category created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldCategoryID, c.ID)
	return c, nil
}

// GetCategories returns all categories ordered by title ascending.
func (r *Repository) GetCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title FROM categories ORDER BY title ASC")
	if err != nil {
		return nil, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch categories", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch categories", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch categories", err)
	}
	return categories, nil
}

// GetCategory fetches a category by id.
func (r *Repository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx, "SELECT id, title FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.NewNotFoundError("Category", id)
	}
	if err != nil {
		return core.Category{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch category", err)
	}
	return c, nil
}

// UpdateCategory merges the patch over the stored category and persists
// the result, keeping the case-insensitive title uniqueness invariant.
func (r *Repository) UpdateCategory(ctx context.Context, id int64, patch core.CategoryPatch) (core.Category, error) {
	existing, err := r.GetCategory(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	if patch.Title == nil {
		return existing, nil
	}

	merged := patch.Apply(existing)
	if err := core.ValidateCategory(merged); err != nil {
		return core.Category{}, err
	}
	merged.Title = strings.TrimSpace(merged.Title)

	taken, err := r.categoryTitleTaken(ctx, merged.Title, id)
	if err != nil {
		return core.Category{}, core.NewTransactionError(core.CodeQueryFailed, "failed to update category", err)
	}
	if taken {
		return core.Category{}, core.NewValidationError("title", "category with this title already exists")
	}

	res, err := r.db.ExecContext(ctx, "UPDATE categories SET title = ? WHERE id = ?", merged.Title, id)
	if err != nil {
		return core.Category{}, core.NewTransactionError(core.CodeUpdateFailed, "failed to update category", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return core.Category{}, core.NewTransactionError(core.CodeUpdateFailed, "failed to update category", err)
	}

	r.log.InfoContext(ctx, "category updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldCategoryID, id)
	return merged, nil
}

// DeleteCategory deletes a category unless any transaction still
// references it. Financial history is never cascade-deleted.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := r.GetCategory(ctx, id); err != nil {
		return err
	}

	var inUse int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE category_id = ?", id).Scan(&inUse)
	if err != nil {
		return core.NewTransactionError(core.CodeQueryFailed, "failed to delete category", err)
	}
	if inUse > 0 {
		return core.NewValidationError("", "cannot delete category that is being used by transactions")
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return core.NewTransactionError(core.CodeDeleteFailed, "failed to delete category", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		// The existence check passed, so a zero-row delete is a
		// consistency anomaly that must be surfaced.
		return core.NewTransactionError(core.CodeDeleteFailed, "failed to delete category", err)
	}

	r.log.InfoContext(ctx, "category deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldCategoryID, id)
	return nil
}
