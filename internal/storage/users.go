package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tally/internal/core"
	applog "tally/internal/log"
)

// CreateUser registers a new user. The password must already be hashed;
// the repository never sees credentials in the clear.
func (r *Repository) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if err := core.ValidateUser(u); err != nil {
		return core.User{}, err
	}

	var exists int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", u.Username).Scan(&exists)
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeQueryFailed, "failed to create user", err)
	}
	if exists > 0 {
		return core.User{}, core.NewValidationError("username", "username already taken")
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		u.Username, u.PasswordHash)
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeWriteFailed, "failed to create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeWriteFailed, "failed to create user", err)
	}
	u.ID = id

	r.log.InfoContext(ctx, "user created",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldUserID, u.ID)
	return u, nil
}

// GetUser fetches a user by id.
func (r *Repository) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.NewNotFoundError("User", id)
	}
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch user", err)
	}
	return u, nil
}

// GetUserByUsername fetches a user by exact username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE username = ?", username).
		Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.NewNotFoundError("User", username)
	}
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch user", err)
	}
	return u, nil
}

// GetUserCount returns the number of registered users.
func (r *Repository) GetUserCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, core.NewTransactionError(core.CodeQueryFailed, "failed to count users", err)
	}
	return n, nil
}

// UpdateUser persists a profile update for an existing user.
func (r *Repository) UpdateUser(ctx context.Context, u core.User) (core.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if err := core.ValidateUser(u); err != nil {
		return core.User{}, err
	}
	if _, err := r.GetUser(ctx, u.ID); err != nil {
		return core.User{}, err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET username = ?, password_hash = ? WHERE id = ?",
		u.Username, u.PasswordHash, u.ID)
	if err != nil {
		return core.User{}, core.NewTransactionError(core.CodeUpdateFailed, "failed to update user", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return core.User{}, core.NewTransactionError(core.CodeUpdateFailed, "failed to update user", err)
	}

	r.log.InfoContext(ctx, "user updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldUserID, u.ID)
	return u, nil
}
