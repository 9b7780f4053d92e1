package storage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tally/internal/core"
	applog "tally/internal/log"
)

// GetTransactionStats computes income/expense totals and counts for a
// user, optionally bounded by startDate/endDate (empty string means
// unbounded). The two sides run as independent queries over the same
// predicate ListTransactions uses, so the numbers always agree with a
// listing under the same filter. Nothing is cached; every call recomputes
// from current state.
func (r *Repository) GetTransactionStats(ctx context.Context, userID int64, startDate, endDate string) (core.Stats, error) {
	var income, expense struct {
		count int64
		sum   int64
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.sumByType(ctx, userID, core.Income, startDate, endDate, &income.count, &income.sum)
	})
	g.Go(func() error {
		return r.sumByType(ctx, userID, core.Expense, startDate, endDate, &expense.count, &expense.sum)
	})
	if err := g.Wait(); err != nil {
		return core.Stats{}, core.NewTransactionError(core.CodeQueryFailed, "failed to fetch transaction statistics", err)
	}

	stats := core.Stats{
		TotalIncome:       income.sum,
		TotalExpenses:     expense.sum,
		TotalTransactions: income.count + expense.count,
		Balance:           income.sum - expense.sum,
		IncomeCount:       income.count,
		ExpenseCount:      expense.count,
	}

	r.log.InfoContext(ctx, "stats computed",
		applog.FieldOperation, applog.OpStats,
		applog.FieldUserID, userID,
		applog.FieldCount, stats.TotalTransactions)
	return stats, nil
}

func (r *Repository) sumByType(ctx context.Context, userID int64, typ core.TransactionType, startDate, endDate string, count, sum *int64) error {
	where, args := buildFilter(userID, core.TransactionFilter{
		Type:      typ,
		StartDate: startDate,
		EndDate:   endDate,
	})
	return r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM transactions WHERE "+where, args...).
		Scan(count, sum)
}
