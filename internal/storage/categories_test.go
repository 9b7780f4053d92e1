package storage

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func (s *RepositorySuite) TestCreateCategoryTrimsTitle() {
	c, err := s.repo.CreateCategory(s.ctx, core.Category{Title: "  Utilities  "})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Utilities", c.Title)
	assert.Greater(s.T(), c.ID, int64(0))
}

func (s *RepositorySuite) TestCategoryTitleUniqueCaseInsensitive() {
	_, err := s.repo.CreateCategory(s.ctx, core.Category{Title: "Food"})
	require.NoError(s.T(), err)

	_, err = s.repo.CreateCategory(s.ctx, core.Category{Title: "food"})
	var ve *core.ValidationError
	require.ErrorAs(s.T(), err, &ve)
	assert.Equal(s.T(), "title", ve.Field)

	_, err = s.repo.CreateCategory(s.ctx, core.Category{Title: " FOOD "})
	require.ErrorAs(s.T(), err, &ve, "trimmed titles collide too")
}

func (s *RepositorySuite) TestGetCategoriesSortedByTitle() {
	for _, title := range []string{"Travel", "Bills", "Rent"} {
		_, err := s.repo.CreateCategory(s.ctx, core.Category{Title: title})
		require.NoError(s.T(), err)
	}

	categories, err := s.repo.GetCategories(s.ctx)
	require.NoError(s.T(), err)
	// "Groceries" comes from the suite setup.
	titles := make([]string, len(categories))
	for i, c := range categories {
		titles[i] = c.Title
	}
	assert.Equal(s.T(), []string{"Bills", "Groceries", "Rent", "Travel"}, titles)
}

func (s *RepositorySuite) TestGetCategoryNotFound() {
	_, err := s.repo.GetCategory(s.ctx, 9999)
	var nf *core.NotFoundError
	require.ErrorAs(s.T(), err, &nf)
	assert.Equal(s.T(), "Category", nf.Resource)
}

func (s *RepositorySuite) TestUpdateCategory() {
	title := "Supermarket"
	updated, err := s.repo.UpdateCategory(s.ctx, s.cat.ID, core.CategoryPatch{Title: &title})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Supermarket", updated.Title)

	got, err := s.repo.GetCategory(s.ctx, s.cat.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), updated, got)
}

func (s *RepositorySuite) TestUpdateCategoryCollision() {
	other, err := s.repo.CreateCategory(s.ctx, core.Category{Title: "Dining"})
	require.NoError(s.T(), err)

	title := "groceries"
	_, err = s.repo.UpdateCategory(s.ctx, other.ID, core.CategoryPatch{Title: &title})
	var ve *core.ValidationError
	require.ErrorAs(s.T(), err, &ve)

	// Renaming a category to its own title (case changed) is fine.
	own := "GROCERIES"
	updated, err := s.repo.UpdateCategory(s.ctx, s.cat.ID, core.CategoryPatch{Title: &own})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "GROCERIES", updated.Title)
}

func (s *RepositorySuite) TestDeleteCategoryGuardedByReferences() {
	created, err := s.repo.CreateTransaction(s.ctx, s.newTransaction())
	require.NoError(s.T(), err)

	err = s.repo.DeleteCategory(s.ctx, s.cat.ID)
	var ve *core.ValidationError
	require.ErrorAs(s.T(), err, &ve, "referenced category must not be deleted")

	require.NoError(s.T(), s.repo.DeleteTransaction(s.ctx, created.ID, s.user.ID))
	require.NoError(s.T(), s.repo.DeleteCategory(s.ctx, s.cat.ID), "deletable once unreferenced")

	_, err = s.repo.GetCategory(s.ctx, s.cat.ID)
	var nf *core.NotFoundError
	require.ErrorAs(s.T(), err, &nf)
}

func (s *RepositorySuite) TestDeleteCategoryNotFound() {
	var nf *core.NotFoundError
	require.ErrorAs(s.T(), s.repo.DeleteCategory(s.ctx, 9999), &nf)
}
