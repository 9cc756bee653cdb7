package telegram

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/koinbxtitas/crypto-frontend/config"
	"github.com/koinbxtitas/crypto-frontend/internal/service"
	"github.com/koinbxtitas/crypto-frontend/pkg/cache"
	"github.com/koinbxtitas/crypto-frontend/pkg/logger"
)

// TelegramBotHandler is the bot surface for the assistant. It drives the
// same session core as the web widget: each Telegram chat maps to one
// conversation id.
type TelegramBotHandler struct {
	ctx           context.Context
	cfg           *config.Config
	log           *logger.Logger
	bot           *telebot.Bot
	chatService   service.ChatService
	inmemoryCache cache.Cache
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	chatService service.ChatService,
	inmemoryCache cache.Cache,
) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:           ctx,
		cfg:           cfg,
		log:           log,
		bot:           bot,
		chatService:   chatService,
		inmemoryCache: inmemoryCache,
	}
}

func (t *TelegramBotHandler) Start() {
	if t.bot == nil {
		t.log.Info("Telegram bot is disabled")
		return
	}

	t.log.Info("Starting Telegram bot...")
	t.RegisterHandlers()
	t.bot.Start()
}

func (t *TelegramBotHandler) Stop() {
	if t.bot == nil {
		return
	}

	t.log.Info("Stopping Telegram bot...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopDone := make(chan struct{}, 1)
	go func() {
		t.bot.Stop()
		stopDone <- struct{}{}
	}()

	select {
	case <-stopDone:
		t.log.Info("Telegram bot stopped successfully")
	case <-ctx.Done():
		t.log.Warn("Timeout while stopping bot, forcing shutdown")
	}
}

func (t *TelegramBotHandler) RegisterHandlers() {
	t.bot.Handle("/start", func(c telebot.Context) error {
		return t.handleStart(t.ctx, c)
	})
	t.bot.Handle("/reset", func(c telebot.Context) error {
		return t.handleReset(t.ctx, c)
	})
	t.bot.Handle(telebot.OnText, func(c telebot.Context) error {
		return t.handleTextMessage(t.ctx, c)
	})
}
