package pgsql

import (
	"context"
	"strings"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	"github.com/Aquaier/Savoo/internal/models"
	"github.com/Aquaier/Savoo/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository keeps one rate per currency against the base currency.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// FindExchangeRate retrieves the stored rate for a currency.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	rows, err := r.Pool.Query(ctx,
		`SELECT currency_code, rate_to_base, fetched_at FROM exchange_rates WHERE currency_code = $1`, code)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, wrapNotFound(err, "exchange rate for "+code)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates retrieves every stored rate.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT currency_code, rate_to_base, fetched_at FROM exchange_rates ORDER BY currency_code`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan exchange rates", err)
	}
	rates := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		rates[i] = mapping.ToDomainExchangeRate(m)
	}
	return rates, nil
}

// ReplaceExchangeRates deletes the table and inserts rates in one transaction,
// so readers never observe a partial table.
func (r *PgxExchangeRateRepository) ReplaceExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM exchange_rates`); err != nil {
		return apperrors.NewAppError(500, "failed to clear exchange rates", err)
	}

	batch := &pgx.Batch{}
	for _, rate := range rates {
		m := mapping.ToModelExchangeRate(rate)
		batch.Queue(`INSERT INTO exchange_rates (currency_code, rate_to_base, fetched_at) VALUES ($1, $2, $3)`,
			m.CurrencyCode, m.RateToBase, m.FetchedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert exchange rates", err)
	}

	return r.Commit(ctx, tx)
}
