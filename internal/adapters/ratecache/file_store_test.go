package ratecache

import (
	"context"
	"testing"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cachePath = "/var/cache/savoo/rates.json"

func TestFileStore_SaveThenLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, cachePath)
	fetchedAt := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

	err := store.Save(context.Background(), domain.RateSnapshot{
		FetchedAt: fetchedAt,
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("4.3012"),
			"USD": decimal.RequireFromString("3.9876"),
		},
	})
	require.NoError(t, err)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, fetchedAt.Equal(snapshot.FetchedAt))
	assert.Len(t, snapshot.Rates, 2)
	assert.True(t, snapshot.Rates["EUR"].Equal(decimal.RequireFromString("4.3012")))

	entries, err := afero.ReadDir(fs, "/var/cache/savoo")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileStore_ReadsNumericRatesAndNaiveTimestamps(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cachePath,
		[]byte(`{"fetched_at": "2024-03-15T08:30:00.123456", "rates": {"eur": 4.3, "USD": 3.99}}`), 0o644))

	snapshot, err := NewFileStore(fs, cachePath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 8, 30, 0, 123456000, time.UTC), snapshot.FetchedAt)
	assert.True(t, snapshot.Rates["EUR"].Equal(decimal.RequireFromString("4.3")))
	assert.True(t, snapshot.Rates["USD"].Equal(decimal.RequireFromString("3.99")))
}

func TestFileStore_SkipsUnreadableRates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cachePath,
		[]byte(`{"fetched_at": "2024-03-15T08:30:00", "rates": {"EUR": 4.3, "XAU": null, "USD": "3.99", "GBP": "n/a", "CHF": true}}`), 0o644))

	snapshot, err := NewFileStore(fs, cachePath).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Rates, 2)
	assert.True(t, snapshot.Rates["EUR"].Equal(decimal.RequireFromString("4.3")))
	assert.True(t, snapshot.Rates["USD"].Equal(decimal.RequireFromString("3.99")))
}

func TestFileStore_UnusableCache(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "rates: yes"},
		{name: "no rates", content: `{"fetched_at": "2024-03-15T08:30:00Z", "rates": {}}`},
		{name: "only unreadable rates", content: `{"fetched_at": "2024-03-15T08:30:00Z", "rates": {"XAU": null}}`},
		{name: "bad timestamp", content: `{"fetched_at": "yesterday", "rates": {"EUR": 4.3}}`},
		{name: "missing timestamp", content: `{"rates": {"EUR": 4.3}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, cachePath, []byte(tt.content), 0o644))

			_, err := NewFileStore(fs, cachePath).Load(context.Background())
			assert.ErrorIs(t, err, ErrNoCache)
		})
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	_, err := NewFileStore(afero.NewMemMapFs(), cachePath).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoCache)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStore_SaveFailsOnReadOnlyFs(t *testing.T) {
	store := NewFileStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), cachePath)
	err := store.Save(context.Background(), domain.RateSnapshot{FetchedAt: time.Now(), Rates: map[string]decimal.Decimal{"EUR": decimal.NewFromInt(4)}})
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoCache)

	rates := map[string]decimal.Decimal{"EUR": decimal.NewFromInt(4)}
	require.NoError(t, store.Save(context.Background(), domain.RateSnapshot{FetchedAt: time.Now(), Rates: rates}))
	rates["EUR"] = decimal.NewFromInt(5)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snapshot.Rates["EUR"].Equal(decimal.NewFromInt(4)))
}
