package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tourbase/internal/common"
	"tourbase/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserRepository is the single source of truth for account state. Mutating
// operations update only the named fields in one statement so concurrent
// flows (reset request vs. login vs. password change) cannot lose updates.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByResetToken matches on the stored token hash AND an unexpired
	// window in a single query.
	FindByResetToken(ctx context.Context, tokenHash string) (*model.User, error)
	SetPasswordResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	ClearPasswordResetToken(ctx context.Context, id string) error
	// UpdatePassword stores the new hash, stamps password_changed_at and
	// clears any outstanding reset token atomically.
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	UpdateProfile(ctx context.Context, id, name, email string) (*model.User, error)
	Deactivate(ctx context.Context, id string) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, name, email, hashed_password, role,
	password_changed_at, password_reset_token, password_reset_expires,
	active, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Role,
		&user.PasswordChangedAt, &user.PasswordResetToken, &user.PasswordResetExpires,
		&user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, hashed_password, role, active)
	          VALUES ($1, $2, $3, $4, $5, TRUE)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.HashedPassword, user.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND active = TRUE`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND active = TRUE`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByResetToken(ctx context.Context, tokenHash string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE password_reset_token = $1 AND password_reset_expires > NOW() AND active = TRUE`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pgUserRepository.FindByResetToken: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) SetPasswordResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	query := `UPDATE users
	          SET password_reset_token = $2, password_reset_expires = $3, updated_at = NOW()
	          WHERE id = $1`
	return r.execOne(ctx, "SetPasswordResetToken", query, id, tokenHash, expires)
}

func (r *pgUserRepository) ClearPasswordResetToken(ctx context.Context, id string) error {
	query := `UPDATE users
	          SET password_reset_token = NULL, password_reset_expires = NULL, updated_at = NOW()
	          WHERE id = $1`
	return r.execOne(ctx, "ClearPasswordResetToken", query, id)
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	// The stamp sits one second in the past so a session minted in the same
	// instant as the change is not immediately stale.
	query := `UPDATE users
	          SET hashed_password = $2, password_changed_at = NOW() - INTERVAL '1 second',
	              password_reset_token = NULL, password_reset_expires = NULL,
	              updated_at = NOW()
	          WHERE id = $1`
	return r.execOne(ctx, "UpdatePassword", query, id, hashedPassword)
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id, name, email string) (*model.User, error) {
	query := `UPDATE users SET name = $2, email = $3, updated_at = NOW()
	          WHERE id = $1 AND active = TRUE
	          RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, name, email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("email already in use: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE users SET active = FALSE, updated_at = NOW() WHERE id = $1`
	return r.execOne(ctx, "Deactivate", query, id)
}

func (r *pgUserRepository) execOne(ctx context.Context, op, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
