package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkeysil/tg2vk/internal/adapters/metrics"
	telegramfiles "github.com/dkeysil/tg2vk/internal/adapters/telegram_files"
	vkAdapter "github.com/dkeysil/tg2vk/internal/adapters/vk"
	"github.com/dkeysil/tg2vk/internal/config"
	"github.com/dkeysil/tg2vk/internal/ports/httpapi"
	telegramPort "github.com/dkeysil/tg2vk/internal/ports/telegram"
	"github.com/dkeysil/tg2vk/internal/relay"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func RunApplication(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		logger.Fatal("error while creating telegram bot", zap.Error(err))
	}
	bot.Debug = cfg.TelegramDebug

	vk := vkAdapter.NewVKAdapter(vkAdapter.Config{
		Token:     cfg.VKToken,
		GroupID:   cfg.VKGroupID,
		FromGroup: cfg.VKFromGroup,
		Version:   cfg.VKAPIVersion,
	}, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tgPort := telegramPort.NewTelegramPort(bot, logger)
	r := relay.New(
		relay.Config{
			GroupID:      cfg.VKGroupID,
			AuthorizedID: cfg.AuthorizedUserID,
		},
		telegramfiles.NewDownloader(bot, http.DefaultClient),
		vk,
		vk,
		tgPort,
		metrics.NewRecorder(registry),
		logger,
	)
	tgPort.SetHandler(r)

	if cfg.HTTPAddr != "" {
		go httpapi.Serve(ctx, cfg.HTTPAddr, httpapi.NewRouter(registry), logger)
	}

	if cfg.AuthorizedUserID == 0 {
		logger.Warn("YOUR_TELEGRAM_ID is not set, accepting messages from everyone")
	}

	logger.Info(
		"starting application",
		zap.String("bot_name", bot.Self.String()),
		zap.Int64("vk_group_id", cfg.VKGroupID),
	)
	tgPort.Listen(ctx)
	logger.Info("application stopped")
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
