package roles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/courseauth/internal/common"
)

const selectQuery = `(?s)^SELECT\s+id,\s*role\s+FROM\s+roles\s+WHERE\s+role\s*=\s*\$1\s*$`

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPostgresGetRoleByName_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow("r-1", "user"))

	got, err := repo.GetRoleByName(context.Background(), "user")
	if err != nil {
		t.Fatalf("GetRoleByName error: %v", err)
	}
	if got.ID != "r-1" || got.Name != "user" {
		t.Fatalf("unexpected role: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPostgresGetRoleByName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("user").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetRoleByName(context.Background(), "user")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestPostgresGetRoleByName_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).WithArgs("user").WillReturnError(errors.New("conn reset"))

	_, err := repo.GetRoleByName(context.Background(), "user")
	if err == nil || !regexp.MustCompile(`db error: .*conn reset`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
