package cmd

import (
	"context"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gopkg.in/telebot.v3"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/pkg/cache"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

type AppDependency struct {
	cfg         *config.Config
	log         *logger.Logger
	validator   *goValidator.Validate
	echo        *echo.Echo
	cache       cache.Cache
	telegramBot *telebot.Bot
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	if err := goValidator.New().Struct(cfg.Assistant); err != nil {
		log.Error("Invalid assistant configuration", logger.ErrorField(err))
		return nil, err
	}

	// the bot surface is optional, the site runs without a token
	var bot *telebot.Bot
	if cfg.Telegram.BotToken != "" {
		pref := telebot.Settings{
			Token:  cfg.Telegram.BotToken,
			Poller: &telebot.LongPoller{Timeout: cfg.Telegram.PollTimeout},
			OnError: func(err error, c telebot.Context) {
				log.Error("Telegram bot error", logger.ErrorField(err))
			},
		}
		bot, err = telebot.NewBot(pref)
		if err != nil {
			log.Error("Failed to create telegram bot", logger.ErrorField(err))
			return nil, err
		}
	}

	e := echo.New()
	e.HideBanner = true

	return &AppDependency{
		cfg:         cfg,
		log:         log,
		validator:   goValidator.New(),
		echo:        e,
		cache:       cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		telegramBot: bot,
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	return d.log.Sync()
}
