package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-blog-auth/app/entity"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

var ErrDuplicateEntry = errors.New("duplicate entry")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectUserColumns = `
		SELECT id, firstname, lastname, email, password_hash, role, account_type, is_verified,
		       profile_image_url, reset_token, reset_token_expires_at, created_at, updated_at
		FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (firstname, lastname, email, password_hash, role, account_type, is_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.AccountType,
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateEntry
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, selectUserColumns+` WHERE email = ?`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	return r.findOne(ctx, selectUserColumns+` WHERE id = ?`, id)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, selectUserColumns+` WHERE reset_token = ?`, token)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return r.findMany(ctx, selectUserColumns+` ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
}

// Search matches the term case-insensitively against first or last name.
// LIKE wildcards in the term are matched literally.
func (r *UserRepository) Search(ctx context.Context, term string, limit int) ([]*entity.User, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	query := selectUserColumns + `
		WHERE LOWER(firstname) LIKE ? OR LOWER(lastname) LIKE ?
		ORDER BY id LIMIT ?`
	return r.findMany(ctx, query, pattern, pattern, limit)
}

// SuggestTeachers returns up to limit verified teacher accounts in random order.
func (r *UserRepository) SuggestTeachers(ctx context.Context, limit int) ([]*entity.User, error) {
	query := selectUserColumns + `
		WHERE account_type = ? AND is_verified = 1
		ORDER BY RAND() LIMIT ?`
	return r.findMany(ctx, query, entity.AccountTypeTeacher, limit)
}

// UpdateNames writes only the name columns so concurrent credential changes
// on the same row are never overwritten.
func (r *UserRepository) UpdateNames(ctx context.Context, userID uint64, firstname, lastname string) error {
	query := `
		UPDATE users SET
			firstname = ?,
			lastname = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, firstname, lastname, time.Now(), userID)
	return err
}

// ToggleVerified flips is_verified in place.
func (r *UserRepository) ToggleVerified(ctx context.Context, userID uint64) error {
	query := `
		UPDATE users SET
			is_verified = NOT is_verified,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	return err
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uint64, token string, expiresAt time.Time) error {
	query := `
		UPDATE users SET
			reset_token = ?,
			reset_token_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, token, expiresAt, time.Now(), userID)
	return err
}

// ConsumeResetToken stores the new password hash and clears the reset token in a
// single row update. It only matches while the token is still the active one, so a
// token can be consumed at most once; the affected row count is returned.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, userID uint64, token, passwordHash string) (int64, error) {
	query := `
		UPDATE users SET
			password_hash = ?,
			reset_token = NULL,
			reset_token_expires_at = NULL,
			updated_at = ?
		WHERE id = ? AND reset_token = ?
	`
	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), userID, token)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.AccountType,
		&user.IsVerified,
		&user.ProfileImageURL,
		&user.ResetToken,
		&user.ResetTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
