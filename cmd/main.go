package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crypto-tracker/internal/alerts"
	"crypto-tracker/internal/bot"
	"crypto-tracker/internal/config"
	"crypto-tracker/internal/emitters"
	"crypto-tracker/internal/events"
	"crypto-tracker/internal/health"
	"crypto-tracker/internal/interfaces"
	"crypto-tracker/internal/logger"
	"crypto-tracker/internal/models"
	"crypto-tracker/internal/oracles"
	"crypto-tracker/internal/oracles/bitcoin"
	"crypto-tracker/internal/oracles/evm"
	"crypto-tracker/internal/oracles/price"
	"crypto-tracker/internal/portfolio"
	"crypto-tracker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Missing transport credential is fatal; nothing can run
		// without it.
		logger.GetLogger().Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)
	log := logger.GetLogger()

	userStore := store.New()

	balanceOracles := make(map[models.ChainKey]interfaces.BalanceOracle)
	for _, key := range cfg.ChainOrder {
		chain := cfg.Chains[key]
		oracleLog := logger.Component("oracle." + key.String())
		client := oracles.NewClient(cfg.HTTP.Timeout, chain.RateLimit, &oracleLog)

		switch chain.Kind {
		case models.KindNativeCoin:
			balanceOracles[key] = bitcoin.New(chain, client)
		case models.KindAccount:
			balanceOracles[key] = evm.New(chain, client)
		}
	}

	priceLog := logger.Component("oracle.price")
	priceOracle := price.New(cfg.PriceAPI, oracles.NewClient(cfg.HTTP.Timeout, 4, &priceLog))

	var emitter interfaces.EventEmitter
	if cfg.Kafka.BrokerAddress != "" {
		kafkaEmitter := emitters.NewKafkaEmitter(cfg.Kafka.BrokerAddress, cfg.Kafka.Topic)
		defer func() {
			_ = kafkaEmitter.Close()
		}()
		emitter = &events.LogEmitter{WrappedEmitter: kafkaEmitter}
	} else {
		emitter = &events.LogEmitter{}
	}

	aggLog := logger.Component("portfolio")
	aggregator := portfolio.NewAggregator(priceOracle, balanceOracles, cfg.Chains, &aggLog)

	botLog := logger.Component("bot")
	tracker, err := bot.New(cfg.Telegram.Token, &botLog)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}

	handler := bot.NewHandler(cfg, userStore, aggregator, priceOracle, tracker.Messenger(), emitter, &botLog)
	tracker.Bind(handler)

	schedLog := logger.Component("alerts")
	scheduler := alerts.New(userStore, priceOracle, tracker.Messenger(), emitter, cfg.Alerts.Schedule, &schedLog)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start alert scheduler")
	}
	defer scheduler.Stop()

	healthChains := make(map[string]config.ChainConfig, len(cfg.Chains))
	for key, chain := range cfg.Chains {
		healthChains[key.String()] = chain
	}
	health.RegisterChains(healthChains)
	go health.Serve(cfg.Health.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health.SetReady(true)
	log.Info().Msg("Crypto Tracker Bot is running")

	tracker.Run(ctx)

	log.Info().Msg("Shutdown complete")
}
