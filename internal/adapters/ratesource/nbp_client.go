package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/utils"
	"github.com/shopspring/decimal"
)

// ErrMalformedResponse is returned when the rate table cannot be read.
var ErrMalformedResponse = errors.New("malformed rate table response")

const maxResponseBytes = 1 << 20

type nbpTable struct {
	Table         string    `json:"table"`
	EffectiveDate string    `json:"effectiveDate"`
	Rates         []nbpRate `json:"rates"`
}

type nbpRate struct {
	Code string `json:"code"`
	// Mid is decoded per entry so that one unreadable quote does not spoil the table.
	Mid json.RawMessage `json:"mid"`
}

// NBPClient reads the average rate table published by the National Bank of Poland.
// Its quotes are PLN per one unit of foreign currency.
type NBPClient struct {
	httpClient *http.Client
	url        string
}

// NBPClientOption is a functional option for configuring the client
type NBPClientOption func(*NBPClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) NBPClientOption {
	return func(n *NBPClient) { n.httpClient = c }
}

func NewNBPClient(url string, options ...NBPClientOption) *NBPClient {
	c := &NBPClient{httpClient: http.DefaultClient, url: url}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.RateSource = (*NBPClient)(nil)

// FetchRates downloads the current table. Deadlines come from ctx.
func (c *NBPClient) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read rate response: %w", err)
	}
	return parseTables(body)
}

func parseTables(body []byte) (map[string]decimal.Decimal, error) {
	var tables []nbpTable
	if err := json.Unmarshal(body, &tables); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: empty table list", ErrMalformedResponse)
	}

	rates := make(map[string]decimal.Decimal, len(tables[0].Rates))
	for _, r := range tables[0].Rates {
		code := strings.ToUpper(strings.TrimSpace(r.Code))
		if code == "" {
			continue
		}
		mid, ok := utils.DecimalFromJSON(r.Mid)
		if !ok {
			continue
		}
		rates[code] = mid
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: table holds no usable rates", ErrMalformedResponse)
	}
	return rates, nil
}
