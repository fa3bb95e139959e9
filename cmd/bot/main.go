package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/converter-bot/internal/clients/fixer"
	"max.ks1230/converter-bot/internal/clients/tg"
	"max.ks1230/converter-bot/internal/config"
	"max.ks1230/converter-bot/internal/entity/currency"
	"max.ks1230/converter-bot/internal/logger"
	"max.ks1230/converter-bot/internal/model/converter"
	"max.ks1230/converter-bot/internal/model/messages"
	"max.ks1230/converter-bot/internal/model/money"
	"max.ks1230/converter-bot/internal/model/rates"
	"max.ks1230/converter-bot/internal/model/storage"
	"max.ks1230/converter-bot/internal/server"
	"max.ks1230/converter-bot/internal/tracing"
)

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	closer, err := tracing.Init(conf.Tracing())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer closer.Close()

	catalog, err := currency.NewCatalog(conf.App().Currencies())
	if err != nil {
		logger.Fatal("failed to init catalog", zap.Error(err))
	}

	formatter, err := money.NewFormatter(conf.App().Locale(), conf.App().Precision())
	if err != nil {
		logger.Fatal("failed to init formatter", zap.Error(err))
	}

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client", zap.Error(err))
	}

	ratesService, err := rates.NewService(fixer.New(conf.Fixer()), catalog, conf.App())
	if err != nil {
		logger.Fatal("failed to init rates service", zap.Error(err))
	}

	holder := converter.NewHolder()
	refresher := rates.NewRefresher(ratesService, holder, conf.App())

	msgService := messages.NewService(
		client,
		storage.NewInMemStorage(),
		holder,
		refresher,
		catalog,
		formatter,
		conf.App(),
	)

	opsServer := server.New(conf.Server(), holder)

	logger.Info("Bot init - end")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		refresher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := opsServer.Run(ctx); err != nil {
			logger.Error("ops server failed", zap.Error(err))
		}
	}()

	client.ListenUpdates(ctx, msgService)
	wg.Wait()
}
