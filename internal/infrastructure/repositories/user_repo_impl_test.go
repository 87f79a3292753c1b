package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndFinders(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		AccountID:    uuid.New(),
		Email:        "rep@ekoink.test",
		Name:         "Jordan Lee",
		PasswordHash: "hashed",
		Role:         entities.UserRoleOwner,
	}
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "rep@ekoink.test", byID.Email)
	require.Equal(t, entities.UserRoleOwner, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "rep@ekoink.test")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@ekoink.test")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_IncrementNotesApproved(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		AccountID:    uuid.New(),
		Email:        "counter@ekoink.test",
		Name:         "Counter",
		PasswordHash: "hashed",
		Role:         entities.UserRoleMember,
	}
	require.NoError(t, repo.Create(ctx, user))

	n, err := repo.IncrementNotesApproved(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = repo.IncrementNotesApproved(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = repo.IncrementNotesApproved(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
