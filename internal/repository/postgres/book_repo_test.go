package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/repository/postgres"
	"github.com/inovotek/book-directory-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBook(ownerID uuid.UUID, title string) *domain.Book {
	return &domain.Book{
		ID:          uuid.New(),
		Title:       title,
		Author:      "Author",
		ISBN:        "isbn",
		Desc:        "desc",
		CreatedByID: ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestBookRepository_CreateAppendsOwnerSnapshot(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	first := newBook(owner.ID, "First")
	require.NoError(t, repos.Book.Create(ctx, first))

	second := newBook(owner.ID, "Second")
	require.NoError(t, repos.Book.Create(ctx, second))

	stored, err := repos.User.GetByID(ctx, owner.ID)
	require.NoError(t, err)

	var snapshots []domain.BookSnapshot
	require.NoError(t, json.Unmarshal(stored.Books, &snapshots))
	require.Len(t, snapshots, 2)
	// Order of creation is preserved.
	assert.Equal(t, "First", snapshots[0].Title)
	assert.Equal(t, "Second", snapshots[1].Title)
}

func TestBookRepository_DuplicateTitleTranslatesToDuplicatedKey(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repos.Book.Create(ctx, newBook(owner.ID, "Dune")))

	err := repos.Book.Create(ctx, newBook(owner.ID, "Dune"))
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The failed transaction must not have touched the owner's list.
	stored, err := repos.User.GetByID(ctx, owner.ID)
	require.NoError(t, err)

	var snapshots []domain.BookSnapshot
	require.NoError(t, json.Unmarshal(stored.Books, &snapshots))
	assert.Len(t, snapshots, 1)
}

func TestUserRepository_DuplicateEmailTranslatesToDuplicatedKey(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	existing, _ := testutil.NewUserBuilder().WithEmail("dup@example.com").Build(t, testDB.DB)
	_ = existing

	err := repos.User.Create(ctx, &domain.User{
		ID:           uuid.New(),
		FullName:     "Dup",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
