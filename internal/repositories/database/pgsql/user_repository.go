package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/Aquaier/Savoo/internal/models"
	"github.com/Aquaier/Savoo/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, password_hash, display_name, default_currency, monthly_income,
	monthly_income_currency, role, last_login_at, security_question, security_answer_hash,
	reset_token_hash, reset_token_expires_at, created_at, last_updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Email, m.PasswordHash, m.DisplayName, m.DefaultCurrency, m.MonthlyIncome,
		m.MonthlyIncomeCurrency, m.Role, m.LastLoginAt, m.SecurityQuestion, m.SecurityAnswerHash,
		m.ResetTokenHash, m.ResetTokenExpiresAt, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s: %w", m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, where string, arg any, what string) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, wrapNotFound(err, what)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id = $1", userID, "user "+userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = $1", email, "user with email "+email)
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET display_name = $1, default_currency = $2, monthly_income = $3,
            monthly_income_currency = $4, last_updated_at = $5
        WHERE user_id = $6;
    `
	tag, err := r.Pool.Exec(ctx, query,
		m.DisplayName, m.DefaultCurrency, m.MonthlyIncome, m.MonthlyIncomeCurrency, m.LastUpdatedAt, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	return expectOneRow(tag, "user "+m.UserID)
}

func (r *PgxUserRepository) MarkUserLoggedIn(ctx context.Context, userID string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE user_id = $2;`, at, userID)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return expectOneRow(tag, "user "+userID)
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE users SET reset_token_hash = $1, reset_token_expires_at = $2 WHERE user_id = $3;`,
		tokenHash, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return expectOneRow(tag, "user "+userID)
}

func (r *PgxUserRepository) ConsumeResetToken(ctx context.Context, userID, tokenHash, passwordHash string, at time.Time) (bool, error) {
	query := `
        UPDATE users
        SET password_hash = $1, reset_token_hash = '', reset_token_expires_at = NULL, last_updated_at = $2
        WHERE user_id = $3 AND reset_token_hash = $4 AND reset_token_hash <> '' AND reset_token_expires_at > $2;
    `
	tag, err := r.Pool.Exec(ctx, query, passwordHash, at, userID, tokenHash)
	if err != nil {
		return false, fmt.Errorf("failed to reset password: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
