package ratecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aquaier/Savoo/internal/apperrors"
	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// ErrNoCache is returned when no usable snapshot exists.
var ErrNoCache = fmt.Errorf("%w: no cached rates", apperrors.ErrNotFound)

// naiveLayouts are accepted for fetched_at values written without a zone; they are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

type cacheFile struct {
	FetchedAt string                     `json:"fetched_at"`
	Rates     map[string]json.RawMessage `json:"rates"`
}

// FileStore keeps the rate snapshot as a small JSON document.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store writing to path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

var _ portssvc.RateCacheStore = (*FileStore)(nil)

// Load reads and validates the snapshot. A missing or corrupt file yields an error.
func (s *FileStore) Load(_ context.Context) (*domain.RateSnapshot, error) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCache, err)
	}

	var file cacheFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: malformed cache file: %v", ErrNoCache, err)
	}
	fetchedAt, err := parseFetchedAt(file.FetchedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCache, err)
	}

	// Entries that are not numbers are skipped one by one.
	rates := make(map[string]decimal.Decimal, len(file.Rates))
	for code, value := range file.Rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		rate, ok := utils.DecimalFromJSON(value)
		if code == "" || !ok {
			continue
		}
		rates[code] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: cache file holds no usable rates", ErrNoCache)
	}

	return &domain.RateSnapshot{FetchedAt: fetchedAt, Rates: rates}, nil
}

// Save writes the snapshot to a temporary file and renames it over the old one,
// so readers never observe a half-written cache.
func (s *FileStore) Save(_ context.Context, snapshot domain.RateSnapshot) error {
	file := cacheFile{
		FetchedAt: snapshot.FetchedAt.UTC().Format(time.RFC3339Nano),
		Rates:     make(map[string]json.RawMessage, len(snapshot.Rates)),
	}
	for code, rate := range snapshot.Rates {
		file.Rates[code] = json.RawMessage(rate.String())
	}

	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rate cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to close rate cache: %w", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace rate cache: %w", err)
	}
	return nil
}

func parseFetchedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("missing fetched_at")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable fetched_at %q", value)
}
