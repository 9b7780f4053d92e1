package storage

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func (s *RepositorySuite) TestCreateUserDuplicateUsername() {
	_, err := s.repo.CreateUser(s.ctx, core.User{Username: "alice", PasswordHash: "y"})
	var ve *core.ValidationError
	require.ErrorAs(s.T(), err, &ve)
	assert.Equal(s.T(), "username", ve.Field)
}

func (s *RepositorySuite) TestGetUserByUsername() {
	got, err := s.repo.GetUserByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.user, got)

	_, err = s.repo.GetUserByUsername(s.ctx, "nobody")
	var nf *core.NotFoundError
	require.ErrorAs(s.T(), err, &nf)
	assert.Equal(s.T(), "User", nf.Resource)
}

func (s *RepositorySuite) TestGetUserCount() {
	n, err := s.repo.GetUserCount(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), n)

	_, err = s.repo.CreateUser(s.ctx, core.User{Username: "bob", PasswordHash: "x"})
	require.NoError(s.T(), err)

	n, err = s.repo.GetUserCount(s.ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), n)
}

func (s *RepositorySuite) TestUpdateUser() {
	s.user.Username = "alice2"
	updated, err := s.repo.UpdateUser(s.ctx, s.user)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "alice2", updated.Username)

	got, err := s.repo.GetUser(s.ctx, s.user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), updated, got)
}

func (s *RepositorySuite) TestUpdateUnknownUser() {
	_, err := s.repo.UpdateUser(s.ctx, core.User{ID: 9999, Username: "ghost", PasswordHash: "x"})
	var nf *core.NotFoundError
	require.ErrorAs(s.T(), err, &nf)
}
