package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"callboard/internal/model"
	repo "callboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestPostgresAdRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdRepository(sqlxDB)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO ads (title, content, category_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`)).WithArgs("Need a healer", "Raid on Saturday", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	ad := &model.Ad{Title: "Need a healer", Content: "Raid on Saturday", AuthorID: uuid.New()}
	created, err := r.Create(context.Background(), ad)
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdRepository_FindByID_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdRepository(sqlxDB)

	mock.ExpectQuery("SELECT a.id, a.title").WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	ad, err := r.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, ad)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdRepository_FindCategoryBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slug, name FROM categories WHERE slug = $1`)).
		WithArgs("healer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name"}).AddRow(id, "healer", "Healers"))

	category, err := r.FindCategoryBySlug(context.Background(), "healer")
	require.NoError(t, err)
	require.Equal(t, "healer", category.Slug)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slug, name FROM categories WHERE slug = $1`)).
		WithArgs("paladin").WillReturnError(sql.ErrNoRows)

	category, err = r.FindCategoryBySlug(context.Background(), "paladin")
	require.NoError(t, err)
	require.Nil(t, category)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresAdRepository(sqlxDB)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ads WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))

	err = r.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
