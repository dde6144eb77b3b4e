package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portsrepo "github.com/Aquaier/Savoo/internal/core/ports/repositories"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// parseOptionalDate parses a YYYY-MM-DD pointer; nil or blank yields nil.
func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := domain.ParseDate(strings.TrimSpace(*value))
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return &parsed, nil
}

// requireOwnedCategory checks that categoryID, when set, names one of the user's categories.
func requireOwnedCategory(ctx context.Context, repo portsrepo.CategoryReader, userID string, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	if _, err := repo.FindCategoryByID(ctx, userID, *categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("category does not exist")
		}
		return fmt.Errorf("looking up category: %w", err)
	}
	return nil
}

// nonEmpty returns nil for a nil or blank string pointer.
func nonEmpty(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

// displayAmount renders a stored transaction in the display currency. Rows already in
// that currency keep their recorded amount; legacy rows without a base amount are
// converted from their own currency.
func displayAmount(ctx context.Context, converter portssvc.ConversionSvc, txn domain.Transaction, display string) (decimal.Decimal, error) {
	if domain.NormalizeCurrencyCode(txn.Currency, converter.BaseCurrency()) == display {
		return txn.Amount, nil
	}
	if txn.ConvertedAmount.Valid {
		return converter.FromBase(ctx, txn.ConvertedAmount.Decimal, display)
	}
	return converter.Convert(ctx, txn.Amount, txn.Currency, display)
}
