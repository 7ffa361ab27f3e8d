package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/petcare-service/internal/domain"
)

var userRowColumns = []string{"id", "email", "password", "nombre", "apellidos", "rut", "rol", "created_at"}

func newUserRepo(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock, time.Second), mock
}

func TestUserRepository_Create_DefaultsRole(t *testing.T) {
	repo, mock := newUserRepo(t)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuarios")).
		WithArgs("a@b.com", "hash", "A", "B", "12.345.678-9", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "rol", "created_at"}).
			AddRow("u-1", domain.RoleUser, created))

	user := &domain.User{Email: "a@b.com", PasswordHash: "hash", Nombre: "A", Apellidos: "B", Rut: "12.345.678-9"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, domain.RoleUser, user.Rol)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuarios")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: ConstraintUserRut})

	err := repo.Create(context.Background(), &domain.User{Email: "a@b.com"})

	var uv *UniqueViolationError
	require.ErrorAs(t, err, &uv)
	assert.Equal(t, ConstraintUserRut, uv.Constraint)
}

func TestUserRepository_Create_OtherError(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO usuarios")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &domain.User{Email: "a@b.com"})

	require.Error(t, err)
	var uv *UniqueViolationError
	assert.False(t, errors.As(err, &uv))
	assert.Contains(t, err.Error(), "create user")
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo, mock := newUserRepo(t)
	created := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios WHERE email = $1")).
		WithArgs("a@b.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-1", "a@b.com", "hash", "A", "B", "12.345.678-9", domain.RoleUser, created))

	user, err := repo.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, "12.345.678-9", user.Rut)
}

func TestUserRepository_FindByEmail_AbsentIsNotAnError(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios WHERE email = $1")).
		WithArgs("missing@b.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	user, err := repo.FindByEmail(context.Background(), "missing@b.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_FindByRut_AbsentIsNotAnError(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios WHERE rut = $1")).
		WithArgs("1.234.567-K").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	user, err := repo.FindByRut(context.Background(), "1.234.567-K")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_FindByID_StoreError(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios WHERE id = $1")).
		WithArgs("u-1").
		WillReturnError(errors.New("timeout"))

	user, err := repo.FindByID(context.Background(), "u-1")
	assert.Nil(t, user)
	assert.ErrorContains(t, err, "find user by id")
}

func TestUserRepository_List(t *testing.T) {
	repo, mock := newUserRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios ORDER BY created_at")).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-1", "a@b.com", "h1", "A", "B", "12.345.678-9", domain.RoleUser, now).
			AddRow("u-2", "c@d.com", "h2", "C", "D", "9.876.543-K", domain.RoleAdmin, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.RoleAdmin, users[1].Rol)
}

func TestUserRepository_DeleteByEmail(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM usuarios WHERE email = $1")).
		WithArgs("a@b.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM usuarios WHERE email = $1")).
		WithArgs("a@b.com").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := repo.DeleteByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.DeleteByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
