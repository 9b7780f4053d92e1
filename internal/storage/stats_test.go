package storage

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func (s *RepositorySuite) TestStatsScenario() {
	// create category -> create expense -> stats reflect it
	created, err := s.repo.CreateTransaction(s.ctx, s.newTransaction())
	require.NoError(s.T(), err)

	stats, err := s.repo.GetTransactionStats(s.ctx, s.user.ID, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.Stats{
		TotalIncome:       0,
		TotalExpenses:     350,
		TotalTransactions: 1,
		Balance:           -350,
		IncomeCount:       0,
		ExpenseCount:      1,
	}, stats)

	// update the amount and the stats follow
	amount := int64(500)
	_, err = s.repo.UpdateTransaction(s.ctx, created.ID, s.user.ID, core.TransactionPatch{Amount: &amount})
	require.NoError(s.T(), err)

	stats, err = s.repo.GetTransactionStats(s.ctx, s.user.ID, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(500), stats.TotalExpenses)
	assert.Equal(s.T(), int64(-500), stats.Balance)
}

func (s *RepositorySuite) TestStatsEmptyLedger() {
	stats, err := s.repo.GetTransactionStats(s.ctx, s.user.ID, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.Stats{}, stats)
}

func (s *RepositorySuite) TestStatsAgreeWithListing() {
	amounts := []int64{1000, 2500, 700}
	for i, amount := range amounts {
		_, err := s.repo.CreateTransaction(s.ctx, s.newTransaction(func(tx *core.Transaction) {
			tx.Title = "Income"
			tx.Type = core.Income
			tx.Amount = amount
			tx.Date = isoDate(time.Date(2026, 4, 1+i, 9, 0, 0, 0, time.UTC))
		}))
		require.NoError(s.T(), err)
	}
	_, err := s.repo.CreateTransaction(s.ctx, s.newTransaction(func(tx *core.Transaction) {
		tx.Amount = 300
	}))
	require.NoError(s.T(), err)

	page, err := s.repo.ListTransactions(s.ctx, s.user.ID, core.TransactionFilter{Type: core.Income})
	require.NoError(s.T(), err)
	var listed int64
	for _, tx := range page.Items {
		listed += tx.Amount
	}

	stats, err := s.repo.GetTransactionStats(s.ctx, s.user.ID, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), listed, stats.TotalIncome, "listing and stats agree")
	assert.Equal(s.T(), int64(3), stats.IncomeCount)
	assert.Equal(s.T(), int64(1), stats.ExpenseCount)
	assert.Equal(s.T(), listed-300, stats.Balance)
}

func (s *RepositorySuite) TestStatsDateBounded() {
	days := []int{1, 10, 20}
	for _, day := range days {
		_, err := s.repo.CreateTransaction(s.ctx, s.newTransaction(func(tx *core.Transaction) {
			tx.Amount = 100
			tx.Date = isoDate(time.Date(2026, 5, day, 12, 0, 0, 0, time.UTC))
		}))
		require.NoError(s.T(), err)
	}

	start := isoDate(time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC))
	end := isoDate(time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC))
	stats, err := s.repo.GetTransactionStats(s.ctx, s.user.ID, start, end)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), stats.ExpenseCount, "only the day-10 row is in range")
	assert.Equal(s.T(), int64(100), stats.TotalExpenses)
}

func (s *RepositorySuite) TestStatsScopedToUser() {
	other, err := s.repo.CreateUser(s.ctx, core.User{Username: "bob", PasswordHash: "x"})
	require.NoError(s.T(), err)

	_, err = s.repo.CreateTransaction(s.ctx, s.newTransaction())
	require.NoError(s.T(), err)

	stats, err := s.repo.GetTransactionStats(s.ctx, other.ID, "", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), core.Stats{}, stats, "another user's rows are invisible")
}
