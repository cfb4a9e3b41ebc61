package provider

import (
	"context"
	"errors"
	"fmt"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/domain"

	"go.uber.org/zap"
)

// Fetcher is the transport collaborator: one GET, body bytes or a *domain.NetworkError.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// CryptoCompare is a stateless client for the min-api market-data endpoints.
// It is safe for concurrent use.
type CryptoCompare struct {
	URLs    URLBuilder
	Fetcher Fetcher
	Log     *zap.Logger
}

var _ application.MarketData = (*CryptoCompare)(nil)

func NewCryptoCompare(urls URLBuilder, f Fetcher, log *zap.Logger) *CryptoCompare {
	if log == nil {
		log = zap.NewNop()
	}
	return &CryptoCompare{URLs: urls, Fetcher: f, Log: log}
}

// CoinList returns general info for every coin the API knows about.
func (c *CryptoCompare) CoinList(ctx context.Context) (any, error) {
	return c.raw(ctx, domain.CoinList, domain.Params{}, domain.DefaultOptions())
}

// Price returns the latest price of fsym in each of the comma-separated tsyms.
func (c *CryptoCompare) Price(ctx context.Context, fsym, tsyms string, o domain.Options) (any, error) {
	return c.raw(ctx, domain.Price, domain.Params{From: fsym, To: tsyms}, o)
}

// PriceMulti returns a price matrix for the comma-separated fsyms and tsyms.
func (c *CryptoCompare) PriceMulti(ctx context.Context, fsyms, tsyms string, o domain.Options) (any, error) {
	return c.raw(ctx, domain.PriceMulti, domain.Params{From: fsyms, To: tsyms}, o)
}

// PriceMultiFull returns full trading info (raw and display) for the fsyms/tsyms matrix.
func (c *CryptoCompare) PriceMultiFull(ctx context.Context, fsyms, tsyms string, o domain.Options) (any, error) {
	return c.raw(ctx, domain.PriceMultiFull, domain.Params{From: fsyms, To: tsyms}, o)
}

// PriceHistorical returns the end-of-day price of fsym at ts (seconds since epoch).
// The timestamp is supplied by the caller.
func (c *CryptoCompare) PriceHistorical(ctx context.Context, fsym, tsyms string, ts int64, o domain.Options) (any, error) {
	return c.raw(ctx, domain.PriceHistorical, domain.Params{From: fsym, To: tsyms, Timestamp: ts}, o)
}

func (c *CryptoCompare) HistoDay(ctx context.Context, fsym, tsym string, limit uint64, o domain.Options) (any, error) {
	return c.raw(ctx, domain.HistoDay, domain.Params{From: fsym, To: tsym, Limit: limit}, o)
}

func (c *CryptoCompare) HistoHour(ctx context.Context, fsym, tsym string, limit uint64, o domain.Options) (any, error) {
	return c.raw(ctx, domain.HistoHour, domain.Params{From: fsym, To: tsym, Limit: limit}, o)
}

// HistoMinute data is kept upstream for seven days only.
func (c *CryptoCompare) HistoMinute(ctx context.Context, fsym, tsym string, limit uint64, o domain.Options) (any, error) {
	return c.raw(ctx, domain.HistoMinute, domain.Params{From: fsym, To: tsym, Limit: limit}, o)
}

// History fetches a histo* endpoint and extracts its records. A limit of N yields
// N+1 records upstream: the current bucket plus N historical ones.
func (c *CryptoCompare) History(ctx context.Context, e domain.Endpoint, fsym, tsym string, limit uint64, o domain.Options) ([]domain.OHLCV, error) {
	if !e.IsHistory() {
		return nil, fmt.Errorf("cryptocompare: %s has no OHLCV data: %w", e, domain.ErrUnknownEndpoint)
	}
	v, err := c.raw(ctx, e, domain.Params{From: fsym, To: tsym, Limit: limit}, o)
	if err != nil {
		return nil, err
	}
	recs, err := ExtractRecords(v)
	if err != nil {
		return nil, stampEndpoint(err, e)
	}
	return recs, nil
}

// SpotPrice fetches the price endpoint for a single target symbol.
func (c *CryptoCompare) SpotPrice(ctx context.Context, fsym, tsym string, o domain.Options) (float64, error) {
	v, err := c.raw(ctx, domain.Price, domain.Params{From: fsym, To: tsym}, o)
	if err != nil {
		return 0, err
	}
	p, err := ExtractPrice(v, tsym)
	if err != nil {
		return 0, stampEndpoint(err, domain.Price)
	}
	return p, nil
}

func (c *CryptoCompare) raw(ctx context.Context, e domain.Endpoint, p domain.Params, o domain.Options) (any, error) {
	url, err := c.URLs.Build(e, p, o)
	if err != nil {
		return nil, err
	}
	body, err := c.Fetcher.Get(ctx, url)
	if err != nil {
		c.log().Debug("cryptocompare_fetch_failed", zap.Stringer("endpoint", e), zap.String("url", url), zap.Error(err))
		return nil, err
	}
	v, err := DecodeJSON(body)
	if err != nil {
		c.log().Debug("cryptocompare_decode_failed", zap.Stringer("endpoint", e), zap.Int("bytes", len(body)), zap.Error(err))
		return nil, err
	}
	return v, nil
}

func (c *CryptoCompare) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func stampEndpoint(err error, e domain.Endpoint) error {
	var se *domain.ShapeError
	if errors.As(err, &se) && !se.Endpoint.Valid() {
		se.Endpoint = e
	}
	return err
}
