package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cryptocompare-client/internal/domain"

	"github.com/go-playground/validator/v10"
)

var targetValidator = validator.New(validator.WithRequiredStructEnabled())

// PollTarget describes what the poller asks for on every run.
type PollTarget struct {
	Endpoint domain.Endpoint `validate:"required"`
	From     string          `validate:"required"`
	To       string          `validate:"required"`
	Limit    uint64
	Options  domain.Options
}

func (t PollTarget) Validate() error {
	if err := targetValidator.Struct(t); err != nil {
		return fmt.Errorf("%w: poll target: %v", ErrBadRequest, err)
	}
	if !t.Endpoint.IsHistory() {
		return fmt.Errorf("%w: poll target: %s is not a histo endpoint", ErrBadRequest, t.Endpoint)
	}
	return nil
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Poller fetches the newest OHLCV bucket for one pair and hands it to a sink.
type Poller struct {
	market MarketData
	sink   CandleSink
	target PollTarget
	clock  Clock

	mu       sync.RWMutex
	lastOK   time.Time
	lastErr  error
	lastSeen domain.Candle
}

type Option func(*Poller)

func WithClock(c Clock) Option { return func(p *Poller) { p.clock = c } }

func NewPoller(market MarketData, sink CandleSink, target PollTarget, opts ...Option) (*Poller, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	p := &Poller{market: market, sink: sink, target: target}
	for _, opt := range opts {
		opt(p)
	}
	if p.clock == nil {
		p.clock = realClock{}
	}
	return p, nil
}

func (p *Poller) Target() PollTarget { return p.target }

// Poll runs one request. The newest bucket is the last element of the Data array.
// Errors are returned unchanged; the caller decides whether to keep polling.
func (p *Poller) Poll(ctx context.Context) (domain.Candle, error) {
	t := p.target
	recs, err := p.market.History(ctx, t.Endpoint, t.From, t.To, t.Limit, t.Options)
	if err != nil {
		p.record(domain.Candle{}, err)
		return domain.Candle{}, err
	}
	if len(recs) == 0 {
		err := fmt.Errorf("%w: %s %s/%s returned no records", ErrNoData, t.Endpoint, t.From, t.To)
		p.record(domain.Candle{}, err)
		return domain.Candle{}, err
	}

	c := domain.Candle{
		FromSymbol: t.From,
		ToSymbol:   t.To,
		Exchange:   t.Options.Exchange,
		Endpoint:   t.Endpoint.Path(),
		Record:     recs[len(recs)-1],
		ObservedAt: p.clock.Now(),
	}
	if err := p.sink.Publish(ctx, c); err != nil {
		err = fmt.Errorf("publish candle: %w", err)
		p.record(domain.Candle{}, err)
		return domain.Candle{}, err
	}
	p.record(c, nil)
	return c, nil
}

func (p *Poller) record(c domain.Candle, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err
	if err == nil {
		p.lastOK = c.ObservedAt
		p.lastSeen = c
	}
}

// Last returns the most recently published candle and whether there was one.
func (p *Poller) Last() (domain.Candle, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSeen, !p.lastOK.IsZero()
}

// Ready reports ErrNotReady unless a poll succeeded within maxAge.
func (p *Poller) Ready(maxAge time.Duration) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastOK.IsZero() {
		if p.lastErr != nil {
			return fmt.Errorf("%w: %v", ErrNotReady, p.lastErr)
		}
		return ErrNotReady
	}
	if age := p.clock.Now().Sub(p.lastOK); maxAge > 0 && age > maxAge {
		return fmt.Errorf("%w: last successful poll %s ago", ErrNotReady, age.Truncate(time.Second))
	}
	return nil
}
