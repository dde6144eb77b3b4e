package mapping

import (
	"strings"

	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/Aquaier/Savoo/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		CurrencyCode: strings.ToUpper(d.CurrencyCode),
		RateToBase:   d.RateToBase,
		FetchedAt:    d.FetchedAt,
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate.
// CHAR(3) columns come back padded, so the code is trimmed.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		CurrencyCode: strings.TrimSpace(m.CurrencyCode),
		RateToBase:   m.RateToBase,
		FetchedAt:    m.FetchedAt,
	}
}
