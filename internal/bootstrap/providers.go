package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/config"
	"cryptocompare-client/internal/domain"
	httpserver "cryptocompare-client/internal/infrastructure/http"
	"cryptocompare-client/internal/infrastructure/httpx"
	"cryptocompare-client/internal/infrastructure/logx"
	"cryptocompare-client/internal/infrastructure/provider"
	redisstore "cryptocompare-client/internal/infrastructure/redis"
	"cryptocompare-client/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App is everything cmd/poller needs to run.
type App struct {
	Config  config.Config
	Poller  *application.Poller
	Worker  application.Worker
	Handler http.Handler
}

func ProvideMarketData(cfg config.Config, log *zap.Logger) application.MarketData {
	switch cfg.Provider {
	case "fake":
		return provider.NewFake(domain.OHLCV{Time: 0, Open: 1, High: 1, Low: 1, Close: 1})
	default:
		return provider.NewCryptoCompare(
			provider.NewURLBuilder(cfg.BaseURL),
			&httpx.Client{HTTP: &http.Client{Timeout: cfg.RequestTimeout}},
			log.Named("cryptocompare"),
		)
	}
}

func ProvideSink(ctx context.Context, cfg config.Config, log *zap.Logger) (application.CandleSink, func(), error) {
	switch cfg.Sink {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pub := redisstore.New(client, cfg.RedisChannel)
		if err := pub.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, func() {}, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return pub, cleanup, nil
	default:
		return &logx.Sink{Log: log}, func() {}, nil
	}
}

func ProvidePollTarget(cfg config.Config) (application.PollTarget, error) {
	e, err := domain.ParseEndpoint(cfg.PollEndpoint)
	if err != nil {
		return application.PollTarget{}, fmt.Errorf("POLL_ENDPOINT: %w", err)
	}
	return application.PollTarget{
		Endpoint: e,
		From:     cfg.PollFromSymbol,
		To:       cfg.PollToSymbol,
		Limit:    cfg.PollLimit,
		Options: domain.Options{
			Exchange:      cfg.PollExchange,
			TryConversion: cfg.PollTryConversion,
		},
	}, nil
}

func ProvideWorker(p *application.Poller, cfg config.Config, log *zap.Logger) (application.Worker, error) {
	return worker.NewCronWorker(p, cfg.PollSchedule, cfg.RequestTimeout, log.Named("worker"))
}

// InitApp wires the poller application from cfg. The returned cleanup is safe to
// call even when an error is returned.
func InitApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, func() {}, err
	}
	target, err := ProvidePollTarget(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	sink, cleanup, err := ProvideSink(ctx, cfg, log)
	if err != nil {
		return nil, cleanup, err
	}
	poller, err := application.NewPoller(ProvideMarketData(cfg, log), sink, target)
	if err != nil {
		return nil, cleanup, err
	}
	w, err := ProvideWorker(poller, cfg, log)
	if err != nil {
		return nil, cleanup, err
	}
	return &App{
		Config:  cfg,
		Poller:  poller,
		Worker:  w,
		Handler: httpserver.NewRouter(httpserver.NewServer(poller, cfg.ReadyMaxAge)),
	}, cleanup, nil
}
