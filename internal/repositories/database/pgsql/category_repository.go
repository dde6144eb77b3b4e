package pgsql

import (
	"context"
	"fmt"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/Aquaier/Savoo/internal/models"
	"github.com/Aquaier/Savoo/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, user_id, name, type, color, icon_url, created_at, last_updated_at`

// PgxCategoryRepository stores per-user categories.
type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(db *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE category_id = $1 AND user_id = $2`,
		categoryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, wrapNotFound(err, "category "+categoryID)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY type, name`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

const insertCategory = `
	INSERT INTO categories (` + categoryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func categoryArgs(m models.Category) []any {
	return []any{m.CategoryID, m.UserID, m.Name, m.Type, m.Color, m.IconURL, m.CreatedAt, m.LastUpdatedAt}
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	_, err := r.Pool.Exec(ctx, insertCategory, categoryArgs(mapping.ToModelCategory(category))...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", category.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

// SaveCategories inserts a batch, skipping names the user already has.
func (r *PgxCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(insertCategory+` ON CONFLICT (user_id, name, type) DO NOTHING`, categoryArgs(mapping.ToModelCategory(c))...)
	}
	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE categories SET name = $1, color = $2, icon_url = $3, last_updated_at = $4
		WHERE category_id = $5 AND user_id = $6`,
		m.Name, m.Color, m.IconURL, m.LastUpdatedAt, m.CategoryID, m.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", m.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return expectOneRow(tag, "category "+m.CategoryID)
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return expectOneRow(tag, "category "+categoryID)
}
