package user

import (
	c "accountd/internal/core/domain/common"
	e "accountd/internal/core/domain/errors"
	"accountd/internal/core/domain/user"
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "app_user_email_idx"
const RESET_TOKEN_CONSTRAINT_NAME = "app_user_reset_token_idx"

const userColumns = "id, name, email, password_hash, reset_token, reset_token_expires_at, created_at"

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the repository
// works standalone or inside a unit of work.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db Querier
}

func NewPgxRepository(db Querier) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO app_user (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = decodeUser(row)
	if isUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, int64(id))
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM app_user WHERE email = $1`, string(email))
}

func (r *PgxUserRepository) GetByResetToken(
	ctx context.Context,
	token user.ResetToken,
) (u user.User, err error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM app_user WHERE reset_token = $1`, string(token))
}

func (r *PgxUserRepository) GetByResetTokenWithLock(
	ctx context.Context,
	token user.ResetToken,
) (u user.User, err error) {
	return r.getOne(
		ctx,
		`SELECT `+userColumns+` FROM app_user WHERE reset_token = $1 FOR UPDATE`,
		string(token),
	)
}

func (r *PgxUserRepository) getOne(ctx context.Context, query string, arg interface{}) (u user.User, err error) {
	u, err = decodeUser(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	assignments := make([]string, 0, 3)
	args := []interface{}{int64(input.ID)}
	if input.DoNameUpdate {
		args = append(args, input.Name)
		assignments = append(assignments, "name = $"+strconv.Itoa(len(args)))
	}
	if input.DoEmailUpdate {
		args = append(args, string(input.Email))
		assignments = append(assignments, "email = $"+strconv.Itoa(len(args)))
	}
	if input.DoPasswordHashUpdate {
		args = append(args, string(input.PasswordHash))
		assignments = append(assignments, "password_hash = $"+strconv.Itoa(len(args)))
	}
	if len(assignments) == 0 {
		return r.GetByID(ctx, input.ID)
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE app_user SET `+strings.Join(assignments, ", ")+
			` WHERE id = $1 RETURNING `+userColumns,
		args...,
	)
	u, err = decodeUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if isUniqueViolation(err, EMAIL_CONSTRAINT_NAME) {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

// SetResetToken commits token and expiry together; a prior token for the
// same user is overwritten by the same statement.
func (r *PgxUserRepository) SetResetToken(ctx context.Context, input user.SetResetTokenInput) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user SET reset_token = $2, reset_token_expires_at = $3 WHERE id = $1`,
		int64(input.UserID),
		string(input.Token),
		input.ExpiresAt,
	)
	if isUniqueViolation(err, RESET_TOKEN_CONSTRAINT_NAME) {
		return user.ErrResetTokenAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// ResetPassword applies the new hash and clears the token in one statement,
// guarded by an exact token match so a concurrently replaced or consumed
// token cannot be honored.
func (r *PgxUserRepository) ResetPassword(ctx context.Context, input user.ResetPasswordInput) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE app_user
		 SET password_hash = $3, reset_token = NULL, reset_token_expires_at = NULL
		 WHERE id = $1 AND reset_token = $2`,
		int64(input.UserID),
		string(input.Token),
		string(input.PasswordHash),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidResetToken
	}
	return nil
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func isUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == constraintName
}

func decodeUser(row pgx.Row) (u user.User, err error) {
	var (
		id                  int64
		name                string
		email               string
		passwordHash        string
		resetToken          sql.NullString
		resetTokenExpiresAt sql.NullTime
		createdAt           time.Time
	)
	err = row.Scan(&id, &name, &email, &passwordHash, &resetToken, &resetTokenExpiresAt, &createdAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:                  user.ID(id),
		Name:                name,
		Email:               c.Email(email),
		PasswordHash:        user.PasswordHash(passwordHash),
		ResetToken:          c.NewOptional(user.ResetToken(resetToken.String), resetToken.Valid),
		ResetTokenExpiresAt: c.NewOptional(resetTokenExpiresAt.Time, resetTokenExpiresAt.Valid),
		CreatedAt:           createdAt,
	}, nil
}
